package personality

import "persona-match/internal/domain"

// KeywordMap asocia cada letra con las palabras clave que la evidencian.
// Una palabra puede aparecer bajo más de una letra.
type KeywordMap map[domain.Letter][]string

// DefaultKeywords es el diccionario estático usado por el Scorer por defecto.
// Todas las entradas están en minúsculas y pertenecen al vocabulario de intereses.
var DefaultKeywords = KeywordMap{
	domain.LetterI: {
		"journaling", "writing", "writing and journaling", "poetry", "philosophy",
		"independent research", "independent study", "independent action", "individualism",
		"individual identity", "daydreaming", "literature", "visual art", "photography",
		"spirituality", "existential questions", "creative writing", "music composition",
		"woodworking", "crafting",
	},
	domain.LetterE: {
		"socializing", "networking", "event hosting", "event planning", "party planning",
		"public speaking", "motivational speaking", "group activities", "team building",
		"team bonding", "leadership", "community leadership", "improv and acting", "sports",
		"entertainment", "friendship building", "public relations", "sales and marketing",
		"debate", "travel",
	},
	domain.LetterS: {
		"practical knowledge", "practical challenges", "building and fixing", "mechanics",
		"diy projects", "hands-on creativity", "bookkeeping", "tradition", "traditional knowledge",
		"history", "historical accuracy", "survival skills", "martial arts", "sports",
		"motorcycles and cars", "woodworking", "health and wellness", "living in the moment",
		"fashion and beauty", "home decoration", "routine-based hobbies",
	},
	domain.LetterN: {
		"abstract concepts", "abstract problem solving", "innovation", "future forecasting",
		"emerging technologies", "artificial intelligence", "brainstorming ideas", "symbolism",
		"mythology", "philosophy", "existential questions", "trendspotting", "vision planning",
		"technology trends", "daydreaming", "creative problem solving", "systems design",
		"startup culture", "writing theory-based content",
	},
	domain.LetterT: {
		"analysis", "data analysis", "coding and algorithms", "systems and logic",
		"strategic thinking", "debate", "structured debate", "complex games (e.g. chess, go)",
		"finance", "financial systems", "business strategy", "risk management", "problem solving",
		"problem troubleshooting", "science and technology", "intellectual challenges",
		"negotiation", "tactical strategy", "quality assurance", "law and order",
	},
	domain.LetterF: {
		"emotional expression", "emotional intelligence", "emotional support",
		"emotional support systems", "caregiving", "teaching and caregiving", "volunteering",
		"volunteer work", "community service", "nonprofit work", "social causes",
		"mental health awareness", "relationship psychology", "psychotherapy", "life coaching",
		"mentorship", "conflict resolution", "music with emotional depth", "personal storytelling",
		"authentic self-expression", "animals", "nature and animals", "storytelling with morals",
	},
	domain.LetterJ: {
		"time management", "project management", "project tracking", "productivity systems",
		"procedures and policies", "operational efficiency", "financial planning",
		"financial management", "event organization", "data organization", "task completion",
		"tactical planning", "traditional structures", "routine-based hobbies", "management",
		"business logistics", "law and order", "quality assurance", "family traditions",
		"government and civics",
	},
	domain.LetterP: {
		"adventure", "new experiences", "travel and cultures", "risk-taking", "risk and reward",
		"freedom of choice", "living in the moment", "fast-paced environments", "improv and acting",
		"daydreaming", "brainstorming ideas", "content creation", "hands-on creativity",
		"music and dance", "entertainment", "fashion", "lifestyle design", "learning new tools",
		"entrepreneurship", "business ventures",
	},
}
