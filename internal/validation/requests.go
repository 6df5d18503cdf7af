package validation

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest fields are optional; nil means "leave as is".
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=3,max=100"`
	Password *string `json:"password" validate:"omitnil,min=5,max=100"`
}

type CreateContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=100"`
	Email     *string `json:"email" validate:"omitnil,max=200,email"`
	Phone     *string `json:"phone" validate:"omitnil,min=8,max=14"`
}

type UpdateContactRequest struct {
	ID        uint    `json:"id" validate:"gt=0"`
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=100"`
	Email     *string `json:"email" validate:"omitnil,max=200,email"`
	Phone     *string `json:"phone" validate:"omitnil,min=8,max=14"`
}

type GetContactRequest struct {
	ID uint `json:"id" validate:"gt=0"`
}

// SearchContactRequest filters are free text. Page and Size are parsed by
// the handler so a malformed number is reported on its field.
type SearchContactRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Phone string `form:"phone"`
	Page  int    `form:"-" json:"page" validate:"gte=1"`
	Size  int    `form:"-" json:"size" validate:"gte=1,lte=100"`
}

type CreateAddressRequest struct {
	ContactID  uint    `json:"contactId" validate:"gt=0"`
	Street     *string `json:"street" validate:"omitnil,min=1,max=100"`
	City       *string `json:"city" validate:"omitnil,min=1,max=100"`
	Province   *string `json:"province" validate:"omitnil,min=1,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=5"`
}

type UpdateAddressRequest struct {
	ContactID  uint    `json:"contactId" validate:"gt=0"`
	ID         uint    `json:"id" validate:"gt=0"`
	Street     *string `json:"street" validate:"omitnil,min=1,max=100"`
	City       *string `json:"city" validate:"omitnil,min=1,max=100"`
	Province   *string `json:"province" validate:"omitnil,min=1,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=5"`
}

type GetAddressRequest struct {
	ContactID uint `json:"contactId" validate:"gt=0"`
	ID        uint `json:"id" validate:"gt=0"`
}

type ListAddressRequest struct {
	ContactID uint `json:"contactId" validate:"gt=0"`
}
