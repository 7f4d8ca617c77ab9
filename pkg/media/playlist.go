package media

// DemoPlaylist returns the playlist the dashboard ships with for
// demos and first boots.
func DemoPlaylist() []Track {
	return []Track{
		{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Duration: 355},
		{Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", Duration: 391},
		{Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV", Duration: 482},
		{Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Album: "Appetite for Destruction", Duration: 356},
		{Title: "Imagine", Artist: "John Lennon", Album: "Imagine", Duration: 183},
		{Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller", Duration: 294},
		{Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", Duration: 301},
		{Title: "Shape of You", Artist: "Ed Sheeran", Album: "÷ (Divide)", Duration: 263},
		{Title: "Rolling in the Deep", Artist: "Adele", Album: "21", Duration: 228},
		{Title: "Uptown Funk", Artist: "Mark Ronson ft. Bruno Mars", Album: "Uptown Special", Duration: 269},
		{Title: "Despacito", Artist: "Luis Fonsi ft. Daddy Yankee", Album: "Vida", Duration: 229},
		{Title: "Thinking Out Loud", Artist: "Ed Sheeran", Album: "x (Multiply)", Duration: 281},
		{Title: "Shake It Off", Artist: "Taylor Swift", Album: "1989", Duration: 219},
		{Title: "Lose Yourself", Artist: "Eminem", Album: "8 Mile", Duration: 326},
	}
}
