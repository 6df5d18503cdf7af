package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/services"
	"github.com/yungbote/contactbook-backend/internal/validation"
)

const (
	paramContactID = "contactId"

	defaultPage     = 1
	defaultPageSize = 10
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req validation.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.contactService.Create(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/contacts/:contactId
func (h *ContactHandler) Get(c *gin.Context) {
	req := validation.GetContactRequest{ID: pathID(c, paramContactID)}
	res, err := h.contactService.Get(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/contacts/:contactId
func (h *ContactHandler) Update(c *gin.Context) {
	var req validation.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	// The path decides which contact is updated, whatever the body says.
	req.ID = pathID(c, paramContactID)
	res, err := h.contactService.Update(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// DELETE /api/contacts/:contactId
func (h *ContactHandler) Remove(c *gin.Context) {
	req := validation.GetContactRequest{ID: pathID(c, paramContactID)}
	if _, err := h.contactService.Remove(requestDB(c), currentUser(c), &req); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, services.MessageResponse{Success: true, Message: services.MsgContactRemoved})
}

// GET /api/contacts?name=&email=&phone=&page=&size=
func (h *ContactHandler) Search(c *gin.Context) {
	var req validation.SearchContactRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, apierr.BadRequest(err.Error()))
		return
	}
	var bad []apierr.FieldError
	var fe *apierr.FieldError
	if req.Page, fe = queryInt(c, "page", defaultPage); fe != nil {
		bad = append(bad, *fe)
	}
	if req.Size, fe = queryInt(c, "size", defaultPageSize); fe != nil {
		bad = append(bad, *fe)
	}
	if len(bad) > 0 {
		response.RespondError(c, apierr.Validation(bad...))
		return
	}
	page, err := h.contactService.Search(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondPage(c, page.Data, page.Paging)
}
