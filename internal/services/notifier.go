package services

// Notifier pushes live events to a user's open connections.
type Notifier interface {
	Notify(userID, event string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, string, interface{}) {}

const EventAchievementUnlocked = "achievement_unlocked"
