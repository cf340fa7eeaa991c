package mail

type SaleConfirmationData struct {
	Name        string
	ProductName string
	Amount      string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
