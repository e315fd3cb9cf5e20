package domain

import "regexp"

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// Customer - покупатель продажи. ID 0 означает, что клиент еще не сохранен
// в бэкенде.
type Customer struct {
	ID            int64
	DNI           string
	Name          string
	FirstSurname  string
	SecondSurname string
}

// NewPlaceholderCustomer выбирается, когда поиск по DNI ничего не нашел,
// чтобы кассир мог ввести имена и зарегистрировать клиента.
func NewPlaceholderCustomer(dni string) *Customer {
	return &Customer{DNI: dni}
}

func (c *Customer) IsPersisted() bool {
	return c != nil && c.ID != 0
}

// HasRequiredNames сообщает, можно ли зарегистрировать клиента.
func (c *Customer) HasRequiredNames() bool {
	return c != nil && c.Name != "" && c.FirstSurname != ""
}

func ValidDNI(dni string) bool {
	return dniPattern.MatchString(dni)
}
