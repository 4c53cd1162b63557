// Package main runs GoRecipe-Admin, a REST service over a recipe database.
// Recipes are stored through gorm on mysql, postgres or sqlite and exposed
// by fiber under /recipes with filtering, sorting, paging, relation
// population and engine specific full text search.
package main
