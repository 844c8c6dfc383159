package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// CompanyResponse is the API representation of a company ("empresa").
type CompanyResponse struct {
	UUID      string `json:"uuid" doc:"Unique identifier"`
	Name      string `json:"nome" doc:"Legal name"`
	CNPJ      string `json:"cnpj" doc:"Company legal id"`
	Active    bool   `json:"ativa" doc:"Whether the company is active"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toCompanyResponse(t domain.Tenant) CompanyResponse {
	return CompanyResponse{
		UUID:      t.ID,
		Name:      t.Name,
		CNPJ:      t.CNPJ,
		Active:    t.Active,
		CreatedAt: fmtWireTime(t.CreatedAt),
		UpdatedAt: fmtWireTime(t.UpdatedAt),
	}
}

// OperatorResponse is the API representation of an operator.
type OperatorResponse struct {
	UUID            string  `json:"uuid" doc:"Unique identifier"`
	CompanyUUID     string  `json:"empresa_uuid" doc:"Owning company"`
	Username        string  `json:"username" doc:"Login name"`
	Staff           bool    `json:"staff" doc:"Elevated privilege flag"`
	Active          bool    `json:"ativo" doc:"Whether the operator is active"`
	CurrentRegister *string `json:"caixa_atual_uuid,omitempty" doc:"Register of the operator's open session, if any"`
}

func toOperatorResponse(o domain.Operator) OperatorResponse {
	return OperatorResponse{
		UUID:            o.ID,
		CompanyUUID:     o.TenantID,
		Username:        o.Username,
		Staff:           o.Staff,
		Active:          o.Active,
		CurrentRegister: o.CurrentRegisterID,
	}
}

type CreateCompanyInput struct {
	Body struct {
		Name string `json:"nome" minLength:"1" maxLength:"255" doc:"Legal name"`
		CNPJ string `json:"cnpj" minLength:"1" maxLength:"18" doc:"Company legal id"`
	}
}

type CreateCompanyOutput struct {
	Body CompanyResponse
}

type GetCompanyInput struct {
	ID string `path:"id" doc:"Company ID"`
}

type GetCompanyOutput struct {
	Body CompanyResponse
}

type CreateOperatorInput struct {
	ID   string `path:"id" doc:"Company ID"`
	Body struct {
		Username string `json:"username" minLength:"1" maxLength:"150" doc:"Login name"`
		Staff    bool   `json:"staff,omitempty" doc:"Grant elevated privilege"`
	}
}

type CreateOperatorOutput struct {
	Body OperatorResponse
}

func registerDirectoryRoutes(api huma.API, svc *app.DirectoryService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-company",
		Method:      http.MethodPost,
		Path:        "/api/v1/empresas",
		Summary:     "Create a company",
		Tags:        []string{"Empresas"},
	}, func(ctx context.Context, input *CreateCompanyInput) (*CreateCompanyOutput, error) {
		tenant, err := svc.CreateTenant(ctx, input.Body.Name, input.Body.CNPJ)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateCompanyOutput{Body: toCompanyResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-company",
		Method:      http.MethodGet,
		Path:        "/api/v1/empresas/{id}",
		Summary:     "Get a company by ID",
		Tags:        []string{"Empresas"},
	}, func(ctx context.Context, input *GetCompanyInput) (*GetCompanyOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		if requester.TenantID != input.ID && !requester.Staff {
			return nil, toHumaError(domain.ErrTenantNotFound)
		}
		tenant, err := svc.GetTenant(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetCompanyOutput{Body: toCompanyResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-operator",
		Method:      http.MethodPost,
		Path:        "/api/v1/empresas/{id}/operadores",
		Summary:     "Create an operator for a company",
		Tags:        []string{"Empresas"},
	}, func(ctx context.Context, input *CreateOperatorInput) (*CreateOperatorOutput, error) {
		operator, err := svc.CreateOperator(ctx, input.ID, input.Body.Username, input.Body.Staff)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateOperatorOutput{Body: toOperatorResponse(operator)}, nil
	})
}
