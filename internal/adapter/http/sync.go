package http

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SnapshotResponse carries a company's data set for an offline terminal,
// either in full or restricted to rows changed since the client's last sync.
// current_server_time is a unix timestamp (fractional seconds) the client
// stores and sends back as last_sync_timestamp on its next delta request.
type SnapshotResponse struct {
	Company           CompanyResponse    `json:"empresa" doc:"Company record"`
	Customers         []CustomerResponse `json:"clientes" doc:"Customers"`
	Products          []ProductResponse  `json:"produtos" doc:"Products"`
	Registers         []RegisterResponse `json:"caixas" doc:"Cash registers"`
	Operators         []OperatorResponse `json:"usuarios" doc:"Active operators"`
	CurrentServerTime float64            `json:"current_server_time" doc:"Server clock at snapshot time (unix seconds)"`
}

func toSnapshotResponse(snapshot domain.TenantSnapshot, serverTime time.Time) SnapshotResponse {
	resp := SnapshotResponse{
		Company:           toCompanyResponse(snapshot.Tenant),
		Customers:         make([]CustomerResponse, len(snapshot.Customers)),
		Products:          make([]ProductResponse, len(snapshot.Products)),
		Registers:         make([]RegisterResponse, len(snapshot.Registers)),
		Operators:         make([]OperatorResponse, len(snapshot.Operators)),
		CurrentServerTime: unixFloat(serverTime),
	}
	for i, c := range snapshot.Customers {
		resp.Customers[i] = toCustomerResponse(c)
	}
	for i, p := range snapshot.Products {
		resp.Products[i] = toProductResponse(p)
	}
	for i, r := range snapshot.Registers {
		resp.Registers[i] = toRegisterResponse(r)
	}
	for i, o := range snapshot.Operators {
		resp.Operators[i] = toOperatorResponse(o)
	}
	return resp
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func timeFromUnixFloat(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

type InitialDataInput struct {
	ID string `path:"id" doc:"Company ID"`
}

type InitialDataOutput struct {
	Body SnapshotResponse
}

type UpdatedDataInput struct {
	ID            string  `path:"id" doc:"Company ID"`
	LastSyncStamp float64 `query:"last_sync_timestamp" required:"true" doc:"Client's previous current_server_time (unix seconds)"`
}

type UpdatedDataOutput struct {
	Body SnapshotResponse
}

func registerSyncRoutes(api huma.API, svc *app.SyncService) {
	huma.Register(api, huma.Operation{
		OperationID: "initial-data",
		Method:      http.MethodGet,
		Path:        "/api/v1/empresas/{id}/dados-iniciais",
		Summary:     "Full data snapshot for a terminal's first sync",
		Tags:        []string{"Sincronizacao"},
	}, func(ctx context.Context, input *InitialDataInput) (*InitialDataOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		snapshot, serverTime, err := svc.InitialData(ctx, requester, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &InitialDataOutput{Body: toSnapshotResponse(snapshot, serverTime)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "updated-data",
		Method:      http.MethodGet,
		Path:        "/api/v1/empresas/{id}/dados-atualizados",
		Summary:     "Rows changed since the terminal's last sync",
		Tags:        []string{"Sincronizacao"},
	}, func(ctx context.Context, input *UpdatedDataInput) (*UpdatedDataOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		snapshot, serverTime, err := svc.UpdatedData(ctx, requester, input.ID, timeFromUnixFloat(input.LastSyncStamp))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdatedDataOutput{Body: toSnapshotResponse(snapshot, serverTime)}, nil
	})
}
