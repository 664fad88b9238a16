package redis

import (
	"fmt"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "dpp"

// accountKey returns the Redis key for a PlayerAccount
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// dedupKey returns the Redis key for a recorded request ID
func dedupKey(id model.PlayerID, requestID string) string {
	return fmt.Sprintf("%s:dedup:%s:%s", keyPrefix, id, requestID)
}

// leaderboardKey returns the Redis key for the leaderboard sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
