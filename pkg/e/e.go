package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Корзина и отправка продажи
	ErrOutOfStock           = fmt.Errorf("product is out of stock")
	ErrEmptyCart            = fmt.Errorf("cart is empty")
	ErrNoCustomer           = fmt.Errorf("a customer must be selected")
	ErrNoPaymentMethod      = fmt.Errorf("a payment method must be selected")
	ErrNoOperationNumber    = fmt.Errorf("an operation number is required")
	ErrSubmissionFailed     = fmt.Errorf("sale submission failed")
	ErrSubmissionInProgress = fmt.Errorf("a sale submission is already in progress")

	// Клиенты
	ErrInvalidDNI         = fmt.Errorf("dni must have 8 digits")
	ErrCustomerNotFound   = fmt.Errorf("customer not found")
	ErrCustomerReadOnly   = fmt.Errorf("selected customer is already registered")
	ErrCustomerIncomplete = fmt.Errorf("customer name and first surname are required")

	// Каталог
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")

	// Поступления
	ErrReceptionNotFound = fmt.Errorf("reception not found")
	ErrInvalidReception  = fmt.Errorf("invalid reception")

	// Бэкенд склада
	ErrBackendUnavailable = fmt.Errorf("backend unavailable")
	ErrBackendRejected    = fmt.Errorf("backend rejected the request")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")

	// 401 Unauthorized
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
