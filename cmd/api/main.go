package main

import (
	"internport-backend/cmd/api/cmd"
	_ "internport-backend/docs" // registers the Swagger spec
)

// @title           InternPort API
// @version         1.0
// @description     Internship marketplace backend for students, companies and admins.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
