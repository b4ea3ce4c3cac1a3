package progression

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)
