package entities

type BookingEmailData struct {
	UserName    string
	BookingCode string
	SpaceName   string
	Date        string
	StartTime   string
	EndTime     string
	TotalPrice  string
	Status      string
	CurrentYear int
}
