package words

// DailyChallenge is the deterministic challenge derived from a date.
// Every player who requests the challenge for the same date receives
// the same words, word count, and time limit.
type DailyChallenge struct {
	Date      string
	WordCount int
	TimeLimit int // seconds
	Tier      Difficulty
	Words     []string
}

// Daily-challenge parameter ranges.
const (
	dailyMinWords = 20
	dailyWordSpan = 31 // word count in [20, 50]
	dailyMinTime  = 60
	dailyTimeSpan = 121 // time limit in [60, 180] seconds
)

// GenerateDaily derives the challenge for a date key (YYYY-MM-DD). The
// derivation is a fixed 32-bit string hash feeding a small LCG, so the
// result is stable across processes and platforms.
func GenerateDaily(date string) DailyChallenge {
	seed := hashString(date)
	next := seededSource(seed)

	wordCount := dailyMinWords + int(next()*dailyWordSpan)
	timeLimit := dailyMinTime + int(next()*dailyTimeSpan)
	tiers := []Difficulty{Easy, Medium, Hard, Expert}
	tier := tiers[int(next()*4)]

	return DailyChallenge{
		Date:      date,
		WordCount: wordCount,
		TimeLimit: timeLimit,
		Tier:      tier,
		Words:     seededSample(wordCount, tier, seed),
	}
}

// seededSample shuffles the tier pool with a fresh LCG from the same
// seed and takes the first count words.
func seededSample(count int, tier Difficulty, seed int32) []string {
	next := seededSource(seed)
	pool := poolFor(tier)
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(next() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// hashString is the classic 32-bit shift-add string hash, kept exactly
// for cross-client word-set agreement.
func hashString(s string) int32 {
	var hash int32
	for _, c := range s {
		hash = (hash << 5) - hash + int32(c)
	}
	if hash < 0 {
		return -hash
	}
	return hash
}

// seededSource returns an LCG yielding floats in [0,1).
func seededSource(seed int32) func() float64 {
	value := int64(seed)
	return func() float64 {
		value = (value*9301 + 49297) % 233280
		return float64(value) / 233280
	}
}
