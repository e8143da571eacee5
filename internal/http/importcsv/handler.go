package importcsv

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/importer"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   uuid.UUID        `json:"accountId"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	Amount      float64          `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Note        *string          `json:"note"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

// rowDTO is a pending row, echoed back on conflict and accepted by /confirm.
type rowDTO struct {
	AccountID   string           `json:"accountId"`
	CategoryID  string           `json:"categoryId"`
	Amount      json.RawMessage  `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Note        *string          `json:"note,omitempty"`
	Date        string           `json:"date"`
}

type conflictDTO struct {
	Incoming rowDTO              `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []rowDTO      `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

type confirmRequest struct {
	Params []rowDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Error(w, r, validate.Errorf("", "failed to parse form: %v", err))
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		render.Error(w, r, validate.Errorf("bank", "bank is required"))
		return
	}

	target, err := parseTarget(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, validate.Errorf("file", "file is required"))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), bank, file, target)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	result, err := h.txSvc.ImportBatch(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]rowDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, tx := range result.New {
			resp.New = append(resp.New, toRowDTO(tx))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toRowDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		render.JSON(w, http.StatusConflict, resp)

		return
	}

	render.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func parseTarget(r *http.Request) (importer.Target, error) {
	var target importer.Target

	fields := []struct {
		name string
		dst  *uuid.UUID
	}{
		{"accountId", &target.AccountID},
		{"incomeCategoryId", &target.IncomeCategoryID},
		{"expenseCategoryId", &target.ExpenseCategoryID},
	}

	for _, f := range fields {
		raw := r.FormValue(f.name)
		if raw == "" {
			return importer.Target{}, validate.Errorf(f.name, "%s is required", f.name)
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return importer.Target{}, validate.Errorf(f.name, "%s must be a valid id", f.name)
		}

		*f.dst = id
	}

	return target, nil
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))

	for i, row := range req.Params {
		p, err := row.params()
		if err != nil {
			render.Error(w, r, validate.Errorf("", "row %d: %v", i+1, err))
			return
		}

		params = append(params, p)
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func (row rowDTO) params() (transaction.CreateParams, error) {
	amount, err := validate.Amount("amount", row.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	date, err := validate.Date("date", row.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		Amount:      amount,
		Type:        row.Type,
		Description: row.Description,
		Note:        row.Note,
		Date:        date,
	}, nil
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		Amount:      tx.Amount.InexactFloat64(),
		Type:        tx.Type,
		Description: tx.Description,
		Note:        tx.Note,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

func toRowDTO(tx *transaction.Transaction) rowDTO {
	return rowDTO{
		AccountID:   tx.AccountID.String(),
		CategoryID:  tx.CategoryID.String(),
		Amount:      json.RawMessage(tx.Amount.String()),
		Type:        tx.Type,
		Description: tx.Description,
		Note:        tx.Note,
		Date:        tx.Date.Format(time.DateOnly),
	}
}
