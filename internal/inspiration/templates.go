package inspiration

var positiveTemplates = map[string]string{
	"joy":        "Your joy is contagious! 😊 Keep spreading those positive eco-vibes! 🌱",
	"pride":      "That pride you feel? It's well-deserved! 🏆 Every eco-action counts! 🌍",
	"optimism":   "Your optimism lights the way for others! ✨ Keep shining bright! 🌟",
	"excitement": "That excitement is fuel for change! 🚀 Channel it into more eco-wins! 💚",
	"gratitude":  "Gratitude is the heart of sustainability! 🙏 Thank you for caring! 🌿",
}

const positiveGeneral = "You're doing amazing! 🌟 Every step towards sustainability matters! 🌱"

// ecoPraise is appended to positive messages for the first eco tag.
var ecoPraise = map[string]string{
	"transport": "Your sustainable transport choices make a real difference! 🚲",
	"energy":    "Energy consciousness leads to a brighter future! ⚡",
	"waste":     "Reducing waste is reducing worry for our planet! ♻️",
	"food":      "Mindful eating feeds both you and the Earth! 🌱",
	"water":     "Every drop saved is a gift to future generations! 💧",
}

var negativeTemplates = map[string]string{
	"guilt":          "Guilt shows you care deeply. Transform it into positive action tomorrow! 💪🌱",
	"disappointment": "Setbacks are setups for comebacks! Tomorrow is a fresh eco-opportunity! 🌅",
	"frustration":    "Your frustration shows passion! Channel it into sustainable solutions! 🔥",
	"sadness":        "It's okay to feel sad about our planet. Your awareness is the first step to healing! 💚",
	"shame":          "No shame in the sustainability game! Every expert was once a beginner! 🌱",
}

const negativeGeneral = "Every eco-champion has tough days. What matters is that you keep caring! 🌍💚"

// mixedTemplates is keyed by "<top positive>_<top negative>".
var mixedTemplates = map[string]string{
	"pride_guilt":          "It's natural to feel both proud and reflective. Balance leads to growth! 🌱⚖️",
	"joy_disappointment":   "Joy and disappointment can coexist. Focus on the progress! 🌈",
	"optimism_frustration": "Your optimism will outlast the frustration. Keep believing! 🌟",
}

const (
	mixedGeneral = "Complex feelings about our planet show deep caring. That's beautiful! 💚🌍"
	mixedDefault = "Mixed emotions are perfectly normal on the eco-journey! 🌈🌱"

	neutralGeneral = "Every day is a chance to make a difference. What will you choose today? 🌱"
	neutralEcoTags = "You're already thinking about eco-actions. That's the first step! 🌿"
)

var moodSuggestions = map[string][]string{
	"happy": {
		"Share your positive energy by teaching someone about eco-habits!",
		"Use this upbeat mood to tackle a challenging eco-project!",
		"Celebrate by treating yourself to a sustainable product!",
	},
	"sad": {
		"Take a mindful walk in nature to lift your spirits.",
		"Try a small eco-action like organizing your recycling.",
		"Remember: every small action helps heal our planet.",
	},
	"frustrated": {
		"Channel that energy into advocacy - write to a local representative!",
		"Start a small eco-project that gives you a sense of control.",
		"Take deep breaths and remember progress takes time.",
	},
	"motivated": {
		"Perfect time to start a new eco-challenge!",
		"Research a new sustainable practice to adopt.",
		"Plan your eco-actions for the week ahead!",
	},
	"guilty": {
		"Transform guilt into action - every expert was once a beginner.",
		"Make one small eco-friendly choice right now.",
		"Focus on progress, not perfection in your eco-journey.",
	},
}

var defaultSuggestions = []string{
	"Every mood is valid on your eco-journey.",
	"Take one small step toward sustainability today.",
	"Remember: awareness is the first step to positive change.",
}
