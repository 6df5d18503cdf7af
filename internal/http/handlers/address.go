package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/services"
	"github.com/yungbote/contactbook-backend/internal/validation"
)

const paramAddressID = "addressId"

type AddressHandler struct {
	addressService services.AddressService
}

func NewAddressHandler(addressService services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// POST /api/contacts/:contactId/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var req validation.CreateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ContactID = pathID(c, paramContactID)
	res, err := h.addressService.Create(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/contacts/:contactId/addresses/:addressId
func (h *AddressHandler) Get(c *gin.Context) {
	req := validation.GetAddressRequest{
		ContactID: pathID(c, paramContactID),
		ID:        pathID(c, paramAddressID),
	}
	res, err := h.addressService.Get(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/contacts/:contactId/addresses/:addressId
func (h *AddressHandler) Update(c *gin.Context) {
	var req validation.UpdateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ContactID = pathID(c, paramContactID)
	req.ID = pathID(c, paramAddressID)
	res, err := h.addressService.Update(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// DELETE /api/contacts/:contactId/addresses/:addressId
func (h *AddressHandler) Remove(c *gin.Context) {
	req := validation.GetAddressRequest{
		ContactID: pathID(c, paramContactID),
		ID:        pathID(c, paramAddressID),
	}
	if _, err := h.addressService.Remove(requestDB(c), currentUser(c), &req); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, services.MessageResponse{Success: true, Message: services.MsgAddressRemoved})
}

// GET /api/contacts/:contactId/addresses
func (h *AddressHandler) List(c *gin.Context) {
	req := validation.ListAddressRequest{ContactID: pathID(c, paramContactID)}
	res, err := h.addressService.List(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}
