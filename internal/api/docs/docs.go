// Package docs holds the OpenAPI document served under /api/docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "User registration details",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Login credentials",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Logout",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					}
				}
			}
		},
		"/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.userListResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.PublicUser"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"users"
				],
				"summary": "Update a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateUserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.PublicUser"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Delete a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/problems": {
			"get": {
				"tags": [
					"problems"
				],
				"summary": "List problems",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "easy, medium or hard",
						"name": "difficulty",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Comma separated tag names",
						"name": "tags",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Matches title or description",
						"name": "search",
						"in": "query"
					},
					{
						"type": "number",
						"description": "Minimum average rating",
						"name": "minRating",
						"in": "query"
					},
					{
						"type": "number",
						"description": "Maximum average rating",
						"name": "maxRating",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "string",
						"description": "createdAt, title, difficulty or rating",
						"name": "sortBy",
						"in": "query"
					},
					{
						"type": "string",
						"description": "asc or desc",
						"name": "sortOrder",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.problemListResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"problems"
				],
				"summary": "Create a problem",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Problem",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createProblemRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Problem"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/problems/stats/overview": {
			"get": {
				"tags": [
					"problems"
				],
				"summary": "Problem statistics",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ports.ProblemStats"
						}
					}
				}
			}
		},
		"/problems/{id}": {
			"get": {
				"tags": [
					"problems"
				],
				"summary": "Get a problem",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ports.ProblemView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"problems"
				],
				"summary": "Update a problem",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateProblemRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Problem"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"problems"
				],
				"summary": "Delete a problem",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/tags": {
			"get": {
				"tags": [
					"tags"
				],
				"summary": "List tags",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Matches name or description",
						"name": "search",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.tagListResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"tags"
				],
				"summary": "Create a tag",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Tag",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.tagRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Tag"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/tags/popular": {
			"get": {
				"tags": [
					"tags"
				],
				"summary": "Most used tags",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.popularTagsResponse"
						}
					}
				}
			}
		},
		"/tags/{id}": {
			"put": {
				"tags": [
					"tags"
				],
				"summary": "Update a tag",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tag ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.tagRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Tag"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"tags"
				],
				"summary": "Delete a tag",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tag ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/comments": {
			"post": {
				"tags": [
					"comments"
				],
				"summary": "Post a comment or reply",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Comment",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createCommentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/ports.CommentView"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/comments/problems/{problemId}": {
			"get": {
				"tags": [
					"comments"
				],
				"summary": "Comment threads of a problem",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "problemId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.commentListResponse"
						}
					}
				}
			}
		},
		"/comments/{id}": {
			"put": {
				"tags": [
					"comments"
				],
				"summary": "Edit own comment",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Comment ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "New content",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateCommentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ports.CommentView"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"comments"
				],
				"summary": "Delete a comment and its replies",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Comment ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/ratings": {
			"post": {
				"tags": [
					"ratings"
				],
				"summary": "Rate a problem",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Rating",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.rateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.rateResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/ratings/problems/{problemId}": {
			"get": {
				"tags": [
					"ratings"
				],
				"summary": "Rating summary of a problem",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "problemId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ratingSummaryResponse"
						}
					}
				}
			}
		},
		"/ratings/problems/{problemId}/my-rating": {
			"get": {
				"tags": [
					"ratings"
				],
				"summary": "Own rating of a problem",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "problemId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.myRatingResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/files/upload": {
			"post": {
				"tags": [
					"files"
				],
				"summary": "Upload a problem attachment",
				"produces": [
					"application/json"
				],
				"consumes": [
					"multipart/form-data"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "file",
						"description": "Attachment (.pdf .txt .md .zip .java .py .js .cpp .c)",
						"name": "file",
						"in": "formData",
						"required": true
					},
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "problemId",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "Description",
						"name": "description",
						"in": "formData"
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.uploadResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"413": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/files/problem/{problemId}": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "Attachments of a problem",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Problem ID",
						"name": "problemId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.fileListResponse"
						}
					}
				}
			}
		},
		"/files/{id}/download": {
			"get": {
				"tags": [
					"files"
				],
				"summary": "Download an attachment",
				"produces": [
					"application/octet-stream"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "File ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/files/{id}": {
			"delete": {
				"tags": [
					"files"
				],
				"summary": "Delete an attachment",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "File ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.PublicUser": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"interviewer",
						"admin"
					]
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"domain.Example": {
			"type": "object",
			"properties": {
				"input": {
					"type": "string"
				},
				"output": {
					"type": "string"
				},
				"explanation": {
					"type": "string"
				}
			}
		},
		"domain.Problem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"difficulty": {
					"type": "string",
					"enum": [
						"easy",
						"medium",
						"hard"
					]
				},
				"examples": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Example"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"createdBy": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"domain.Tag": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"color": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"domain.Rating": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"userId": {
					"type": "integer"
				},
				"problemId": {
					"type": "integer"
				},
				"value": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"domain.File": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"filename": {
					"type": "string"
				},
				"originalName": {
					"type": "string"
				},
				"path": {
					"type": "string"
				},
				"problemId": {
					"type": "integer"
				},
				"uploadedBy": {
					"type": "integer"
				},
				"fileSize": {
					"type": "integer"
				},
				"mimeType": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"ports.ProblemView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"difficulty": {
					"type": "string",
					"enum": [
						"easy",
						"medium",
						"hard"
					]
				},
				"examples": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Example"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"createdBy": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				},
				"averageRating": {
					"type": "number"
				},
				"ratingCount": {
					"type": "integer"
				}
			}
		},
		"ports.CommentView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"content": {
					"type": "string"
				},
				"userId": {
					"type": "integer"
				},
				"problemId": {
					"type": "integer"
				},
				"parentId": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/domain.PublicUser"
				}
			}
		},
		"ports.CommentThread": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"content": {
					"type": "string"
				},
				"userId": {
					"type": "integer"
				},
				"problemId": {
					"type": "integer"
				},
				"parentId": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/domain.PublicUser"
				},
				"replies": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ports.CommentView"
					}
				}
			}
		},
		"ports.TagCount": {
			"type": "object",
			"properties": {
				"tag": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"ports.ProblemStats": {
			"type": "object",
			"properties": {
				"totalProblems": {
					"type": "integer"
				},
				"byDifficulty": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"popularTags": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ports.TagCount"
					}
				},
				"totalTags": {
					"type": "integer"
				}
			}
		},
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.messageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string"
				}
			}
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handler.authResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/domain.PublicUser"
				},
				"token": {
					"type": "string"
				}
			}
		},
		"handler.userResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/domain.PublicUser"
				}
			}
		},
		"handler.updateUserRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				}
			}
		},
		"handler.userListResponse": {
			"type": "object",
			"properties": {
				"users": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.PublicUser"
					}
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"handler.exampleRequest": {
			"type": "object",
			"properties": {
				"input": {
					"type": "string"
				},
				"output": {
					"type": "string"
				},
				"explanation": {
					"type": "string"
				}
			}
		},
		"handler.createProblemRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"difficulty": {
					"type": "string"
				},
				"examples": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.exampleRequest"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"handler.updateProblemRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"difficulty": {
					"type": "string"
				},
				"examples": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.exampleRequest"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"handler.problemListResponse": {
			"type": "object",
			"properties": {
				"problems": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ports.ProblemView"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				},
				"hasNext": {
					"type": "boolean"
				},
				"hasPrev": {
					"type": "boolean"
				}
			}
		},
		"handler.tagRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"color": {
					"type": "string"
				}
			}
		},
		"handler.tagListResponse": {
			"type": "object",
			"properties": {
				"tags": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Tag"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"handler.popularTagsResponse": {
			"type": "object",
			"properties": {
				"tags": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Tag"
					}
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"handler.createCommentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				},
				"problemId": {
					"type": "integer"
				},
				"parentId": {
					"type": "integer"
				}
			}
		},
		"handler.updateCommentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			}
		},
		"handler.commentListResponse": {
			"type": "object",
			"properties": {
				"comments": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ports.CommentThread"
					}
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"handler.rateRequest": {
			"type": "object",
			"properties": {
				"problemId": {
					"type": "integer"
				},
				"value": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				}
			}
		},
		"handler.rateResponse": {
			"type": "object",
			"properties": {
				"rating": {
					"$ref": "#/definitions/domain.Rating"
				},
				"averageRating": {
					"type": "number"
				},
				"ratingCount": {
					"type": "integer"
				}
			}
		},
		"handler.ratingSummaryResponse": {
			"type": "object",
			"properties": {
				"averageRating": {
					"type": "number"
				},
				"ratingCount": {
					"type": "integer"
				},
				"userRating": {
					"$ref": "#/definitions/domain.Rating"
				}
			}
		},
		"handler.myRatingResponse": {
			"type": "object",
			"properties": {
				"userRating": {
					"$ref": "#/definitions/domain.Rating"
				}
			}
		},
		"handler.fileListResponse": {
			"type": "object",
			"properties": {
				"files": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.File"
					}
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"handler.uploadResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"file": {
					"$ref": "#/definitions/domain.File"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0.0",
	Host:			 "",
	BasePath:		 "/api",
	Schemes:		  []string{},
	Title:			"LeetCode Clone API",
	Description:	  "REST API for coding problems, tags, comments, ratings and attachments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
