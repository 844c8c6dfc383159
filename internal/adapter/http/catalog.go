package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	UUID        string `json:"uuid" doc:"Unique identifier"`
	Name        string `json:"nome" doc:"Display name"`
	Description string `json:"descricao,omitempty" doc:"Free-form description"`
	Price       string `json:"preco" doc:"Current list price (decimal string)"`
	Stock       int64  `json:"estoque" doc:"Units in stock"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		UUID:        p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Stock:       p.Stock,
		CreatedAt:   fmtWireTime(p.CreatedAt),
		UpdatedAt:   fmtWireTime(p.UpdatedAt),
	}
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	UUID      string `json:"uuid" doc:"Unique identifier"`
	Name      string `json:"nome" doc:"Full name"`
	CPF       string `json:"cpf" doc:"Personal legal id (unique per company)"`
	Email     string `json:"email,omitempty" doc:"Contact email"`
	Phone     string `json:"telefone,omitempty" doc:"Contact phone"`
	Address   string `json:"endereco,omitempty" doc:"Street address"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		UUID:      c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: fmtWireTime(c.CreatedAt),
		UpdatedAt: fmtWireTime(c.UpdatedAt),
	}
}

// RegisterResponse is the API representation of a cash register ("caixa").
type RegisterResponse struct {
	UUID      string `json:"uuid" doc:"Unique identifier"`
	Name      string `json:"nome" doc:"Display name (unique per company)"`
	Type      string `json:"tipo" doc:"Register role" enum:"principal,satellite"`
	Active    bool   `json:"ativo" doc:"Whether the register accepts sessions"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toRegisterResponse(r domain.CashRegister) RegisterResponse {
	return RegisterResponse{
		UUID:      r.ID,
		Name:      r.Name,
		Type:      string(r.Type),
		Active:    r.Active,
		CreatedAt: fmtWireTime(r.CreatedAt),
		UpdatedAt: fmtWireTime(r.UpdatedAt),
	}
}

type CreateProductInput struct {
	Body struct {
		Name        string `json:"nome" minLength:"1" maxLength:"255" doc:"Display name"`
		Description string `json:"descricao,omitempty" doc:"Free-form description"`
		Price       string `json:"preco" doc:"List price (decimal string)"`
		Stock       int64  `json:"estoque" minimum:"0" doc:"Initial units in stock"`
	}
}

type CreateProductOutput struct {
	Body ProductResponse
}

type GetProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

type GetProductOutput struct {
	Body ProductResponse
}

type ListProductsOutput struct {
	Body []ProductResponse
}

type UpdateProductInput struct {
	ID   string `path:"id" doc:"Product ID"`
	Body struct {
		Name        *string `json:"nome,omitempty" maxLength:"255" doc:"Display name"`
		Description *string `json:"descricao,omitempty" doc:"Free-form description"`
		Price       *string `json:"preco,omitempty" doc:"List price (decimal string)"`
		Stock       *int64  `json:"estoque,omitempty" minimum:"0" doc:"Units in stock"`
	}
}

type UpdateProductOutput struct {
	Body ProductResponse
}

type DeleteProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

type DeleteCustomerInput struct {
	ID string `path:"id" doc:"Customer ID"`
}

type DeleteRegisterInput struct {
	ID string `path:"id" doc:"Register ID"`
}

type CreateCustomerInput struct {
	Body struct {
		Name    string `json:"nome" minLength:"1" maxLength:"255" doc:"Full name"`
		CPF     string `json:"cpf" minLength:"1" maxLength:"14" doc:"Personal legal id"`
		Email   string `json:"email,omitempty" doc:"Contact email"`
		Phone   string `json:"telefone,omitempty" doc:"Contact phone"`
		Address string `json:"endereco,omitempty" doc:"Street address"`
	}
}

type CreateCustomerOutput struct {
	Body CustomerResponse
}

type ListCustomersOutput struct {
	Body []CustomerResponse
}

type CreateRegisterInput struct {
	Body struct {
		Name string `json:"nome" minLength:"1" maxLength:"255" doc:"Display name"`
		Type string `json:"tipo" doc:"Register role" enum:"principal,satellite"`
	}
}

type CreateRegisterOutput struct {
	Body RegisterResponse
}

type ListRegistersOutput struct {
	Body []RegisterResponse
}

func registerCatalogRoutes(api huma.API, svc *app.CatalogService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/produtos",
		Summary:     "Add a product to the catalog",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *CreateProductInput) (*CreateProductOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		price, err := parseMoney("preco", input.Body.Price)
		if err != nil {
			return nil, err
		}
		product, err := svc.CreateProduct(ctx, requester, input.Body.Name, input.Body.Description, price, input.Body.Stock)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateProductOutput{Body: toProductResponse(product)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/produtos/{id}",
		Summary:     "Get a product by ID",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *GetProductInput) (*GetProductOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		product, err := svc.GetProduct(ctx, requester, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetProductOutput{Body: toProductResponse(product)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/produtos",
		Summary:     "List the company's products",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *struct{}) (*ListProductsOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		products, err := svc.ListProducts(ctx, requester)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]ProductResponse, len(products))
		for i, p := range products {
			resp[i] = toProductResponse(p)
		}
		return &ListProductsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPatch,
		Path:        "/api/v1/produtos/{id}",
		Summary:     "Update a product's fields",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *UpdateProductInput) (*UpdateProductOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		in := app.UpdateProductInput{
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Stock:       input.Body.Stock,
		}
		if input.Body.Price != nil {
			price, err := parseMoney("preco", *input.Body.Price)
			if err != nil {
				return nil, err
			}
			in.Price = &price
		}
		product, err := svc.UpdateProduct(ctx, requester, input.ID, in)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateProductOutput{Body: toProductResponse(product)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/api/v1/produtos/{id}",
		Summary:       "Remove a product from the catalog",
		Tags:          []string{"Catalogo"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteProductInput) (*struct{}, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		if err := svc.DeleteProduct(ctx, requester, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-customer",
		Method:      http.MethodPost,
		Path:        "/api/v1/clientes",
		Summary:     "Add a customer",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *CreateCustomerInput) (*CreateCustomerOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		customer, err := svc.CreateCustomer(ctx, requester, input.Body.Name, input.Body.CPF, input.Body.Email, input.Body.Phone, input.Body.Address)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateCustomerOutput{Body: toCustomerResponse(customer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-customers",
		Method:      http.MethodGet,
		Path:        "/api/v1/clientes",
		Summary:     "List the company's customers",
		Tags:        []string{"Catalogo"},
	}, func(ctx context.Context, input *struct{}) (*ListCustomersOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		customers, err := svc.ListCustomers(ctx, requester)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]CustomerResponse, len(customers))
		for i, c := range customers {
			resp[i] = toCustomerResponse(c)
		}
		return &ListCustomersOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-customer",
		Method:        http.MethodDelete,
		Path:          "/api/v1/clientes/{id}",
		Summary:       "Remove a customer",
		Tags:          []string{"Catalogo"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteCustomerInput) (*struct{}, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		if err := svc.DeleteCustomer(ctx, requester, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-register",
		Method:      http.MethodPost,
		Path:        "/api/v1/caixas",
		Summary:     "Add a cash register",
		Tags:        []string{"Caixas"},
	}, func(ctx context.Context, input *CreateRegisterInput) (*CreateRegisterOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		register, err := svc.CreateRegister(ctx, requester, input.Body.Name, domain.RegisterType(input.Body.Type))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateRegisterOutput{Body: toRegisterResponse(register)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-registers",
		Method:      http.MethodGet,
		Path:        "/api/v1/caixas",
		Summary:     "List the company's cash registers",
		Tags:        []string{"Caixas"},
	}, func(ctx context.Context, input *struct{}) (*ListRegistersOutput, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		registers, err := svc.ListRegisters(ctx, requester)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]RegisterResponse, len(registers))
		for i, r := range registers {
			resp[i] = toRegisterResponse(r)
		}
		return &ListRegistersOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-register",
		Method:        http.MethodDelete,
		Path:          "/api/v1/caixas/{id}",
		Summary:       "Remove a cash register",
		Tags:          []string{"Caixas"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteRegisterInput) (*struct{}, error) {
		requester, err := operatorFrom(ctx)
		if err != nil {
			return nil, err
		}
		if err := svc.DeleteRegister(ctx, requester, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})
}
