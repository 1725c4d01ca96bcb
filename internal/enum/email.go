package enum

type EmailPriority string

const (
	EmailPriorityNormal EmailPriority = "normal"
	EmailPriorityUrgent EmailPriority = "urgent"
)

func (p EmailPriority) String() string {
	return string(p)
}
