package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SaleItemResponse is one sale line on the wire.
type SaleItemResponse struct {
	UUID        string `json:"uuid" doc:"Unique identifier"`
	ProductUUID string `json:"produto_uuid" doc:"Product sold"`
	Quantity    int64  `json:"quantidade" doc:"Units sold"`
	UnitPrice   string `json:"preco_unitario" doc:"Price captured at sale time (decimal string)"`
	Subtotal    string `json:"subtotal" doc:"quantidade × preco_unitario (decimal string)"`
}

// InvoiceResponse is the sale's billing document.
type InvoiceResponse struct {
	UUID      string `json:"uuid" doc:"Unique identifier"`
	IssueDate string `json:"data_emissao" doc:"Issue timestamp (ISO 8601)"`
	DueDate   string `json:"data_vencimento" doc:"Due timestamp (ISO 8601)"`
	Total     string `json:"valor_total" doc:"Billed amount (decimal string)"`
	Paid      bool   `json:"esta_paga" doc:"Whether the invoice has been settled"`
}

// ReturnResponse is one recorded return against a sale line.
type ReturnResponse struct {
	UUID         string `json:"uuid" doc:"Unique identifier"`
	SaleItemUUID string `json:"item_venda_uuid" doc:"Sale line being reversed"`
	Quantity     int64  `json:"quantidade" doc:"Units returned"`
	Reason       string `json:"motivo,omitempty" doc:"Free-form reason"`
}

// SaleResponse is the API representation of a sale with its owned rows.
type SaleResponse struct {
	UUID         string             `json:"uuid" doc:"Unique identifier"`
	CompanyUUID  string             `json:"empresa_uuid" doc:"Owning company"`
	CustomerUUID string             `json:"cliente_uuid" doc:"Buying customer"`
	SessionUUID  string             `json:"sessao_caixa_uuid" doc:"Session the sale was recorded in"`
	OperatorUUID *string            `json:"operador_uuid,omitempty" doc:"Recording operator, if still known"`
	Total        string             `json:"valor_total" doc:"Sum of line subtotals (decimal string)"`
	CreatedAt    string             `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt    string             `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
	Items        []SaleItemResponse `json:"itens" doc:"Line items"`
	Invoice      *InvoiceResponse   `json:"fatura,omitempty" doc:"Billing document, if issued"`
	Returns      []ReturnResponse   `json:"devolucoes,omitempty" doc:"Recorded returns"`
}

func toSaleResponse(detail app.SaleDetail) SaleResponse {
	resp := SaleResponse{
		UUID:         detail.Sale.ID,
		CompanyUUID:  detail.Sale.TenantID,
		CustomerUUID: detail.Sale.CustomerID,
		SessionUUID:  detail.Sale.SessionID,
		OperatorUUID: detail.Sale.OperatorID,
		Total:        detail.Sale.Total.String(),
		CreatedAt:    fmtWireTime(detail.Sale.CreatedAt),
		UpdatedAt:    fmtWireTime(detail.Sale.UpdatedAt),
		Items:        make([]SaleItemResponse, len(detail.Items)),
		Returns:      make([]ReturnResponse, len(detail.Returns)),
	}
	for i, item := range detail.Items {
		resp.Items[i] = SaleItemResponse{
			UUID:        item.ID,
			ProductUUID: item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Subtotal:    item.Subtotal().String(),
		}
	}
	if detail.Invoice != nil {
		resp.Invoice = &InvoiceResponse{
			UUID:      detail.Invoice.ID,
			IssueDate: fmtWireTime(detail.Invoice.IssueDate),
			DueDate:   fmtWireTime(detail.Invoice.DueDate),
			Total:     detail.Invoice.Total.String(),
			Paid:      detail.Invoice.Paid,
		}
	}
	for i, ret := range detail.Returns {
		resp.Returns[i] = ReturnResponse{
			UUID:         ret.ID,
			SaleItemUUID: ret.SaleItemID,
			Quantity:     ret.Quantity,
			Reason:       ret.Reason,
		}
	}
	return resp
}

// SaleSummaryResponse is a sale without its owned rows, used by listings.
type SaleSummaryResponse struct {
	UUID         string  `json:"uuid" doc:"Unique identifier"`
	CustomerUUID string  `json:"cliente_uuid" doc:"Buying customer"`
	SessionUUID  string  `json:"sessao_caixa_uuid" doc:"Session the sale was recorded in"`
	OperatorUUID *string `json:"operador_uuid,omitempty" doc:"Recording operator, if still known"`
	Total        string  `json:"valor_total" doc:"Sum of line subtotals (decimal string)"`
	CreatedAt    string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toSaleSummaryResponse(s domain.Sale) SaleSummaryResponse {
	return SaleSummaryResponse{
		UUID:         s.ID,
		CustomerUUID: s.CustomerID,
		SessionUUID:  s.SessionID,
		OperatorUUID: s.OperatorID,
		Total:        s.Total.String(),
		CreatedAt:    fmtWireTime(s.CreatedAt),
	}
}

// SaleItemRequest is one requested line item.
type SaleItemRequest struct {
	ProductUUID string `json:"produto_uuid" doc:"Product to sell"`
	Quantity    int64  `json:"quantidade" minimum:"1" doc:"Units to sell"`
}

// InvoiceRequest carries invoice fields; omitted fields are left as-is on
// update, and valor_total defaults to the sale's total on creation.
type InvoiceRequest struct {
	IssueDate *time.Time `json:"data_emissao,omitempty" doc:"Issue timestamp"`
	DueDate   *time.Time `json:"data_vencimento,omitempty" doc:"Due timestamp"`
	Total     *string    `json:"valor_total,omitempty" doc:"Billed amount (decimal string)"`
	Paid      *bool      `json:"esta_paga,omitempty" doc:"Settlement flag"`
}

// ReturnRequest reverses part of an existing sale line.
type ReturnRequest struct {
	SaleItemUUID string `json:"item_venda_uuid" doc:"Sale line being reversed"`
	Quantity     int64  `json:"quantidade" minimum:"1" doc:"Units to return"`
	Reason       string `json:"motivo,omitempty" doc:"Free-form reason"`
}

type CreateSaleInput struct {
	Body struct {
		SessionUUID  string            `json:"sessao_caixa_uuid" doc:"Open session to record against"`
		CustomerUUID string            `json:"cliente_uuid" doc:"Buying customer"`
		Items        []SaleItemRequest `json:"itens" minItems:"1" doc:"Line items"`
		Invoice      *InvoiceRequest   `json:"fatura,omitempty" doc:"Billing document"`
		Returns      []ReturnRequest   `json:"devolucoes,omitempty" doc:"Immediate returns"`
	}
}

type CreateSaleOutput struct {
	Status int
	Body   SaleResponse
}

type UpdateSaleInput struct {
	ID   string `path:"id" doc:"Sale ID"`
	Body struct {
		Items   []SaleItemRequest `json:"itens,omitempty" doc:"Replacement line items (full replacement)"`
		Invoice *InvoiceRequest   `json:"fatura,omitempty" doc:"Invoice fields to merge"`
		Returns []ReturnRequest   `json:"devolucoes,omitempty" doc:"Returns to append"`
	}
}

type UpdateSaleOutput struct {
	Body SaleResponse
}

type GetSaleInput struct {
	ID string `path:"id" doc:"Sale ID"`
}

type GetSaleOutput struct {
	Body SaleResponse
}

type ListOpenSessionSalesOutput struct {
	Body []SaleSummaryResponse
}

func toItemInputs(items []SaleItemRequest) []app.SaleItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]app.SaleItemInput, len(items))
	for i, item := range items {
		inputs[i] = app.SaleItemInput{ProductID: item.ProductUUID, Quantity: item.Quantity}
	}
	return inputs
}

func toInvoiceInput(req *InvoiceRequest) (*app.InvoiceInput, error) {
	if req == nil {
		return nil, nil
	}
	in := app.InvoiceInput{
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
		Paid:      req.Paid,
	}
	if req.Total != nil {
		total, err := parseMoney("fatura.valor_total", *req.Total)
		if err != nil {
			return nil, err
		}
		in.Total = &total
	}
	return &in, nil
}

func toReturnInputs(returns []ReturnRequest) []app.ReturnInput {
	inputs := make([]app.ReturnInput, len(returns))
	for i, ret := range returns {
		inputs[i] = app.ReturnInput{SaleItemID: ret.SaleItemUUID, Quantity: ret.Quantity, Reason: ret.Reason}
	}
	return inputs
}

func registerSaleRoutes(api huma.API, svc *app.SaleService) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-sale",
		Method:        http.MethodPost,
		Path:          "/api/v1/vendas",
		Summary:       "Record a sale against an open session",
		Tags:          []string{"Vendas"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateSaleInput) (*CreateSaleOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		invoice, err := toInvoiceInput(input.Body.Invoice)
		if err != nil {
			return nil, err
		}
		detail, err := svc.Create(ctx, requester, app.CreateSaleInput{
			SessionID:  input.Body.SessionUUID,
			CustomerID: input.Body.CustomerUUID,
			Items:      toItemInputs(input.Body.Items),
			Invoice:    invoice,
			Returns:    toReturnInputs(input.Body.Returns),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateSaleOutput{Status: http.StatusCreated, Body: toSaleResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-sale",
		Method:      http.MethodPatch,
		Path:        "/api/v1/vendas/{id}",
		Summary:     "Update a sale",
		Tags:        []string{"Vendas"},
	}, func(ctx context.Context, input *UpdateSaleInput) (*UpdateSaleOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		invoice, err := toInvoiceInput(input.Body.Invoice)
		if err != nil {
			return nil, err
		}
		detail, err := svc.Update(ctx, requester, input.ID, app.UpdateSaleInput{
			Items:   toItemInputs(input.Body.Items),
			Invoice: invoice,
			Returns: toReturnInputs(input.Body.Returns),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateSaleOutput{Body: toSaleResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-sale",
		Method:      http.MethodGet,
		Path:        "/api/v1/vendas/{id}",
		Summary:     "Get a sale by ID",
		Tags:        []string{"Vendas"},
	}, func(ctx context.Context, input *GetSaleInput) (*GetSaleOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		detail, err := svc.Get(ctx, requester, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetSaleOutput{Body: toSaleResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-open-session-sales",
		Method:      http.MethodGet,
		Path:        "/api/v1/vendas/abertas",
		Summary:     "List sales of the operator's current open session",
		Tags:        []string{"Vendas"},
	}, func(ctx context.Context, input *struct{}) (*ListOpenSessionSalesOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		sales, err := svc.ListOpenSessionSales(ctx, requester)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]SaleSummaryResponse, len(sales))
		for i, s := range sales {
			resp[i] = toSaleSummaryResponse(s)
		}
		return &ListOpenSessionSalesOutput{Body: resp}, nil
	})
}
