package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SessionResponse is the API representation of a register session.
type SessionResponse struct {
	UUID           string  `json:"uuid" doc:"Unique identifier"`
	RegisterUUID   string  `json:"caixa_uuid" doc:"Register the session runs on"`
	OperatorUUID   string  `json:"operador_uuid" doc:"Operator who opened the session"`
	OpenedAt       string  `json:"aberta_em" doc:"Open timestamp (ISO 8601)"`
	ClosedAt       *string `json:"fechada_em,omitempty" doc:"Close timestamp (ISO 8601)"`
	OpeningBalance string  `json:"saldo_inicial" doc:"Cash counted at open (decimal string)"`
	ClosingBalance *string `json:"saldo_final,omitempty" doc:"Cash counted at close (decimal string)"`
	Open           bool    `json:"esta_aberta" doc:"Whether the session is still open"`
}

func toSessionResponse(s domain.Session) SessionResponse {
	resp := SessionResponse{
		UUID:           s.ID,
		RegisterUUID:   s.RegisterID,
		OperatorUUID:   s.OperatorID,
		OpenedAt:       fmtWireTime(s.OpenedAt),
		ClosedAt:       fmtWireTimePtr(s.ClosedAt),
		OpeningBalance: s.OpeningBalance.String(),
		Open:           s.IsOpen(),
	}
	if s.ClosingBalance != nil {
		v := s.ClosingBalance.String()
		resp.ClosingBalance = &v
	}
	return resp
}

type OpenSessionInput struct {
	RegisterID string `path:"caixa_id" doc:"Register ID"`
	Body       struct {
		OpeningBalance string `json:"saldo_inicial" doc:"Cash counted at open (decimal string)"`
	}
}

type OpenSessionOutput struct {
	Body SessionResponse
}

type CloseSessionInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		ClosingBalance *string `json:"saldo_final" doc:"Cash counted at close (decimal string)"`
	}
}

type CloseSessionOutput struct {
	Body SessionResponse
}

type GetSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type GetSessionOutput struct {
	Body SessionResponse
}

func registerSessionRoutes(api huma.API, svc *app.SessionService) {
	huma.Register(api, huma.Operation{
		OperationID: "open-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/caixas/{caixa_id}/sessoes/abrir",
		Summary:     "Open a session on a cash register",
		Tags:        []string{"Sessoes"},
	}, func(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		balance, err := parseMoney("saldo_inicial", input.Body.OpeningBalance)
		if err != nil {
			return nil, err
		}
		session, err := svc.Open(ctx, requester, input.RegisterID, balance)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &OpenSessionOutput{Body: toSessionResponse(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "close-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessoes/{id}/fechar",
		Summary:     "Close an open session",
		Tags:        []string{"Sessoes"},
	}, func(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}

		var balance *decimal.Decimal
		if input.Body.ClosingBalance != nil {
			v, err := parseMoney("saldo_final", *input.Body.ClosingBalance)
			if err != nil {
				return nil, err
			}
			balance = &v
		}

		session, err := svc.Close(ctx, requester, input.ID, balance)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CloseSessionOutput{Body: toSessionResponse(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessoes/{id}",
		Summary:     "Get a session by ID",
		Tags:        []string{"Sessoes"},
	}, func(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		session, err := svc.Get(ctx, requester, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetSessionOutput{Body: toSessionResponse(session)}, nil
	})
}
