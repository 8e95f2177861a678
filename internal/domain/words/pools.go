package words

// Tiered word pools. TimeLimit, WordCount, and Practice draw from the
// mixed easy+medium+hard pool; Survival and the daily challenge pick a
// tier by difficulty.
var (
	easyPool = []string{
		"cat", "dog", "sun", "run", "hat", "ball", "tree", "fish", "bird", "moon",
		"star", "book", "hand", "food", "love", "time", "home", "play", "jump", "sing",
		"blue", "pink", "help", "read", "write", "walk", "talk", "door", "wall", "rose",
		"snow", "rain", "wind", "fire", "water", "earth", "leaf", "seed", "rock", "wave",
		"sand", "lake", "hill", "road", "path", "gate", "desk", "lamp", "sock", "shoe",
		"cup", "bed", "car", "bus", "toy", "pen", "bag", "box", "key", "note",
		"bug", "ant", "cow", "pig", "goat", "frog", "duck", "owl", "bee", "hen",
		"soft", "hard", "warm", "cold", "dry", "wet", "fast", "slow", "loud", "quiet",
		"park", "farm", "yard", "shop", "city", "town", "room", "hall", "kitchen", "garden",
		"cake", "rice", "meat", "milk", "tea", "juice", "fruit", "plant", "corn", "beans",
		"green", "red", "white", "black", "yellow", "purple", "brown", "silver", "gold", "orange",
		"game", "win", "lose", "score", "level", "point", "goal", "team", "match", "playground",
	}

	mediumPool = []string{
		"apple", "house", "river", "cloud", "table", "chair", "smile", "happy", "bread", "music",
		"dance", "light", "sound", "round", "tiger", "horse", "beach", "ocean", "mountain", "forest",
		"bridge", "window", "pocket", "basket", "bottle", "button", "carpet", "castle", "cheese", "cherry",
		"cookie", "cotton", "dragon", "circle", "square", "flower", "finger", "gloves", "hammer", "island",
		"jungle", "kettle", "ladder", "lemon", "marble", "needle", "planet", "rocket", "energy", "pencil",
		"camera", "memory", "kitchen", "picture", "people", "shadow", "animal", "thunder", "blanket", "shelter",
		"signal", "whistle", "compass", "lantern", "branch", "season", "harvest", "canyon", "valley", "desert",
		"library", "museum", "harbor", "market", "festival", "village", "station", "airport", "journey", "victory",
		"dolphin", "parrot", "giraffe", "gazelle", "panther", "falcon", "beetle", "python", "lioness", "stallion",
		"crystal", "mineral", "granite", "copper", "carbon", "sulfur", "quartz", "circuit", "battery", "sensor",
	}

	hardPool = []string{
		"adventure", "brilliant", "challenge", "dangerous", "elephant", "fantastic", "geography", "hurricane", "important", "jubilant",
		"knowledge", "landscape", "mysterious", "necessary", "octopus", "parliament", "question", "rainbow", "skeleton", "telescope",
		"umbrella", "velocity", "wonderful", "xylophone", "yesterday", "zeppelin", "beautiful", "butterfly", "crocodile", "dinosaur",
		"education", "flamingo", "helicopter", "incredible", "jellyfish", "kangaroo", "lightning", "magician", "orchestra", "penguin",
		"algorithm", "boundary", "calendar", "ceremony", "conclusion", "container", "creature", "decision", "delivery", "electricity",
		"exception", "gallery", "hardware", "identity", "judgment", "keyboard", "language", "manuscript", "mechanism", "molecule",
		"momentum", "narrative", "particle", "passenger", "pharmacy", "platform", "population", "resource", "response", "security",
		"software", "solution", "strategy", "terminal", "tournament", "treasure", "variable", "volunteer", "warehouse", "workshop",
	}

	expertPool = []string{
		"accomplishment", "bibliography", "circumstance", "documentary", "entrepreneur", "fluorescent", "governmental", "headquarters", "imaginative", "jurisdiction",
		"kaleidoscope", "legislative", "metropolitan", "neighborhood", "optimization", "philosophical", "questionnaire", "revolutionary", "sophisticated", "temperature",
		"undergraduate", "vulnerability", "extraordinary", "achievement", "breakthrough", "characteristic", "determination", "fundamentally", "humanitarian", "knowledgeable",
		"manufacturing", "nevertheless", "opportunities", "parliamentary", "quantitative", "relationship", "supplementary", "traditionally", "understanding", "visualization",
		"collaboration", "cryptocurrency", "cybersecurity", "decentralized", "electromagnetic", "environmental", "experimental", "globalization", "illustration", "implementation",
		"institutional", "intellectual", "interpretation", "multiplication", "neurological", "pharmaceutical", "physiological", "precipitation", "psychological", "recommendation",
		"reinforcement", "representative", "specialization", "synchronization", "telecommunication", "transformation", "verification", "computational", "concentration", "infrastructure",
	}
)
