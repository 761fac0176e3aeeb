package scheduler

// Factors are the mastery step sizes for streak positions 1, 2, 3 and 4+.
type Factors [4]float64

// At returns the factor applied when a streak reaches position n.
func (f Factors) At(n int) float64 {
	if n < 1 {
		n = 1
	}
	if n > len(f) {
		n = len(f)
	}
	return f[n-1]
}

// RewardProfile controls how far correct answers push a card back and how
// quickly mastery grows.
type RewardProfile struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
	ExpBase         float64 `json:"exp_base"`
	Factors         Factors `json:"factors"`
	// MasteredStreak is the correct streak every card of a deck must reach
	// before the deck counts as mastered.
	MasteredStreak int `json:"mastered_streak"`
}

const DefaultProfileID = 3

var profiles = [...]RewardProfile{
	{ID: 1, Name: "Dense", SpeedMultiplier: 0.5, ExpBase: 1.6, Factors: Factors{0.14, 0.21, 0.28, 0.35}, MasteredStreak: 5},
	{ID: 2, Name: "Solid", SpeedMultiplier: 0.75, ExpBase: 1.75, Factors: Factors{0.16, 0.24, 0.32, 0.40}, MasteredStreak: 4},
	{ID: 3, Name: "Standard", SpeedMultiplier: 1.0, ExpBase: 2.0, Factors: Factors{0.2, 0.3, 0.4, 0.5}, MasteredStreak: 3},
	{ID: 4, Name: "Leap", SpeedMultiplier: 1.5, ExpBase: 2.5, Factors: Factors{0.24, 0.36, 0.48, 0.60}, MasteredStreak: 3},
	{ID: 5, Name: "Flash", SpeedMultiplier: 2.0, ExpBase: 3.0, Factors: Factors{0.28, 0.42, 0.56, 0.70}, MasteredStreak: 2},
}

// Profiles returns a copy of the built-in profile table.
func Profiles() []RewardProfile {
	out := make([]RewardProfile, len(profiles))
	copy(out, profiles[:])
	return out
}

// ProfileByID looks a profile up by id.
func ProfileByID(id int) (RewardProfile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return RewardProfile{}, false
}

// StandardProfile is the default profile and the fallback for unknown ids.
func StandardProfile() RewardProfile {
	p, _ := ProfileByID(DefaultProfileID)
	return p
}
