package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           textgate API
// @version         1.0
// @description     HTTP API for child-safe text generation with a single on-device model.
//
// @contact.name   textgate maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
