package textproc

// DefaultMedievalWords is the built-in medieval word table.
var DefaultMedievalWords = map[string]string{
	"you":        "thou",
	"your":       "thy",
	"yours":      "thine",
	"you're":     "thou art",
	"are":        "art",
	"hello":      "hail",
	"hi":         "hail",
	"yes":        "aye",
	"no":         "nay",
	"my":         "mine",
	"before":     "ere",
	"often":      "oft",
	"maybe":      "perchance",
	"goodbye":    "farewell",
	"bye":        "fare thee well",
	"friend":     "companion",
	"police":     "city watch",
	"lawyer":     "advocate",
	"prosecutor": "crown's advocate",
	"detective":  "inquisitor",
	"money":      "coin",
	"dead":       "slain",
	"killed":     "slew",
	"gun":        "crossbow",
	"car":        "carriage",
	"phone":      "raven",
	"objection":  "I protest",
}
