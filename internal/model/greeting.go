package model

// Greeting is one canned phrase for a (time of day, language, tone)
// combination.  This struct corresponds to a row in the `greetings` table.
//
// Fields:
//  ID              – primary key, assigned by storage on insert.
//  TimeOfDay       – e.g. "Morning", "Afternoon", "Evening".
//  Language        – e.g. "English", "Swedish", "Spanish".
//  GreetingMessage – the display phrase.
//  Tone            – e.g. "Formal", "Casual".
type Greeting struct {
    ID              uint64 // greetings.id
    TimeOfDay       string // greetings.timeOfDay
    Language        string // greetings.language
    GreetingMessage string // greetings.greetingMessage
    Tone            string // greetings.tone
}

// Valid reports whether all four text fields are non-empty.
func (g Greeting) Valid() bool {
    return g.TimeOfDay != "" && g.Language != "" && g.GreetingMessage != "" && g.Tone != ""
}
