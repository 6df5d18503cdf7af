package services

import types "github.com/yungbote/contactbook-backend/internal/domain"

const (
	msgUserUpdated    = "Update User Successfully"
	msgUserLoggedOut  = "User Logged Out Successfully"
	MsgContactRemoved = "Remove Contact Successfully"
	MsgAddressRemoved = "Remove Address Successfully"

	msgBadCredentials  = "wrong username or password"
	msgUnauthorized    = "Unauthorized"
	msgDuplicateUser   = "username already registered"
	msgContactNotFound = "Contact not found"
	msgAddressNotFound = "Address not found"
)

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

type AddressResponse struct {
	ID         uint    `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
}

type Paging struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	Size        int `json:"size"`
}

type ContactPage struct {
	Data   []ContactResponse `json:"data"`
	Paging Paging            `json:"paging"`
}

func toUserResponse(u *types.User) *UserResponse {
	return &UserResponse{Username: u.Username, Name: u.Name}
}

func toContactResponse(c *types.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func toAddressResponse(a *types.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

func successMessage(msg string) *MessageResponse {
	return &MessageResponse{Success: true, Message: msg}
}
