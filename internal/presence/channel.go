package presence

import "strings"

const channelPrefix = "typing:"

// Signal is the ephemeral typing payload. Nothing is stored; the most
// recent signal wins.
type Signal struct {
	SenderID string `json:"senderId"`
	IsTyping bool   `json:"isTyping"`
}

// ChannelName derives the pair channel from the two participant ids,
// sorted, so both ends land on the same channel without coordination.
func ChannelName(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return channelPrefix + userA + ":" + userB
}

// ParseChannel recovers the two participant ids from a channel name.
func ParseChannel(name string) (userA, userB string, ok bool) {
	rest, found := strings.CutPrefix(name, channelPrefix)
	if !found {
		return "", "", false
	}
	userA, userB, found = strings.Cut(rest, ":")
	if !found || userA == "" || userB == "" {
		return "", "", false
	}
	return userA, userB, true
}
