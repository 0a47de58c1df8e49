// Package models defines the gorm models of the catalog: titles and genres.
package models
