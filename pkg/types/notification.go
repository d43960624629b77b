package types

// NotificationVariant mirrors the severity of the storefront's transient messages.
type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a one-shot, user-facing message attached to mutation
// responses. It is never stored or replayed.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

// Notify builds a default-severity notification.
func Notify(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: NotificationDefault}
}
