package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -config ../../api/oapi-codegen/dto.yaml ../../api/openapi/control.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -config ../../api/oapi-codegen/trackingapi.yaml ../../api/openapi/tracking.yaml
