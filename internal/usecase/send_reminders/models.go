package send_reminders

// Response итог прохода рассылки
type Response struct {
	Checked int // записей на целевые даты
	Sent    int
	Failed  int
}
