package domain

import (
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

// Register - незавершенная продажа одного кассира: корзина и все поля,
// которые форма продажи собирает до отправки.
type Register struct {
	SessionID       string
	Cart            Cart
	Customer        *Customer
	PaymentMethod   string
	OperationNumber string
	DNISearch       string
	UpdatedAt       time.Time
}

func NewRegister(sessionID string) *Register {
	return &Register{SessionID: sessionID}
}

// Validate проверяет условия отправки в фиксированном порядке и возвращает
// первое нарушенное.
func (r *Register) Validate() error {
	switch {
	case r.Cart.IsEmpty():
		return e.ErrEmptyCart
	case !r.Customer.IsPersisted():
		return e.ErrNoCustomer
	case r.PaymentMethod == "":
		return e.ErrNoPaymentMethod
	case r.OperationNumber == "":
		return e.ErrNoOperationNumber
	}
	return nil
}

// AssembleSale проверяет кассу и собирает продажу. Позиции идут в порядке
// корзины и сохраняют цены из корзины.
func (r *Register) AssembleSale(userID int64, now time.Time) (*SaleDraft, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	details := make([]SaleDetail, 0, len(r.Cart.Lines))
	for _, l := range r.Cart.Lines {
		details = append(details, SaleDetail{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}

	return &SaleDraft{
		UserID:          userID,
		CustomerID:      r.Customer.ID,
		PaymentMethod:   r.PaymentMethod,
		OperationNumber: r.OperationNumber,
		Date:            now.UTC(),
		Customer: SaleCustomer{
			Name:          r.Customer.Name,
			FirstSurname:  r.Customer.FirstSurname,
			SecondSurname: r.Customer.SecondSurname,
		},
		Details: details,
	}, nil
}

// Reset возвращает кассу в исходное состояние после успешной отправки.
// Способ оплаты и номер операции сохраняются.
func (r *Register) Reset() {
	r.Cart.Clear()
	r.Customer = nil
	r.DNISearch = ""
}

// SelectCustomer заменяет выбранного клиента и запоминает искомый DNI.
func (r *Register) SelectCustomer(c *Customer, dni string) {
	r.Customer = c
	r.DNISearch = dni
}

// EditCustomerNames обновляет имена еще не сохраненного клиента.
func (r *Register) EditCustomerNames(name, firstSurname, secondSurname string) error {
	if r.Customer == nil {
		return e.ErrNoCustomer
	}
	if r.Customer.IsPersisted() {
		return e.ErrCustomerReadOnly
	}

	r.Customer.Name = name
	r.Customer.FirstSurname = firstSurname
	r.Customer.SecondSurname = secondSurname
	return nil
}
