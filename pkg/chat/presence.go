package chat

import "time"

// OnlineWindow is how recently a user must have been seen to show as online
const OnlineWindow = 24 * time.Hour

// IsOnline derives presence from the profile's last-seen time. A missing
// profile or last-seen timestamp is offline.
func IsOnline(profile *UserProfile) bool {
	if profile == nil || profile.LastSeenAt == nil {
		return false
	}
	return time.Since(*profile.LastSeenAt) < OnlineWindow
}
