package notification

// Action is the kind of state transition a notification describes.
type Action int

const (
	// Add inserts NewItems.
	Add Action = iota
	// Remove deletes OldItems.
	Remove
	// Replace swaps OldItems for NewItems.
	Replace
	// Reset asserts an unrelated snapshot, OldItems and NewItems are empty.
	Reset
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	case Replace:
		return "Replace"
	case Reset:
		return "Reset"
	default:
		return "Unknown"
	}
}
