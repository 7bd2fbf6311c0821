package main

// @title           Gestor de Certificados API
// @version         1.0
// @description     API para acompanhamento de certificados de empresas por CNPJ

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
