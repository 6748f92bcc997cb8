package rabbitmq

// ReceiptsExchange — exchange для событий о возвратах машин.
const ReceiptsExchange = "receipts"

// QueueConfig описывает очередь и ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReceiptQueues возвращает очереди для обработчиков квитанций.
func GetReceiptQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "receipts.booking-closed", RoutingKey: "booking.closed"},
	}
}
