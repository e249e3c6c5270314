package i18n

// Messages is the full string table of one language. Day arrays are
// Monday first.
type Messages struct {
	LanguageName       string
	AppTitle           string
	ThemeToggle        string
	NotificationToggle string
	Days               [7]string
	DaysFull           [7]string
	ScheduleTitle      string
	AddSchedule        string

	AM, PM      string
	MarkerFirst bool
	MarkerSep   string

	// NotificationBody uses {day} and {time} placeholders.
	NotificationBody string

	EmptyState struct{ Line1, Line2 string }
	Modal      ModalMessages
	Permission PermissionMessages
	Toast      ToastMessages
	Buttons    struct{ Edit, Delete string }
}

type ModalMessages struct {
	AddTitle               string
	EditTitle              string
	Time                   string
	ActivityName           string
	ActivityPlaceholder    string
	Description            string
	DescriptionPlaceholder string
	ApplyDays              string
	SelectAll              string
	EnableNotification     string
	ApplyToAll             string
	Cancel                 string
	Save                   string
}

type PermissionMessages struct {
	Title          string
	Message        string
	Later          string
	Allow          string
	Denied         string
	Granted        string
	AlreadyGranted string
}

// affix wraps a day name or count, e.g. "Schedule added to " + "Monday".
type affix struct {
	Prefix, Suffix string
}

func (a affix) render(s string) string {
	return a.Prefix + s + a.Suffix
}

type ToastMessages struct {
	SelectDays      string
	FillRequired    string
	ScheduleAdded   affix
	ScheduleUpdated affix
	ScheduleDeleted string
	SaveError       string
	DeleteConfirm   string
	DayCount        string
}
