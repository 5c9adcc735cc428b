package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scolarite mock backend",
        "description": "Local REST backend for students, training tracks, course units and grades",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "tags": [
        {"name": "Parcours", "description": "Training tracks"},
        {"name": "Students", "description": "Students and their track"},
        {"name": "UEs", "description": "Course units"},
        {"name": "Notes", "description": "Grades out of 20"}
    ],
    "paths": {
        "/parcours": {
            "get": {"tags": ["Parcours"], "summary": "List training tracks", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Parcours"}}}}},
            "post": {
                "tags": ["Parcours"], "summary": "Create training track",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ParcoursPayload"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Parcours"}}, "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ClientError"}}}
            }
        },
        "/parcours/{id}": {
            "get": {"tags": ["Parcours"], "summary": "Get training track", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Parcours"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}},
            "put": {
                "tags": ["Parcours"], "summary": "Update training track",
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ParcoursPayload"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Parcours"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}
            },
            "delete": {"tags": ["Parcours"], "summary": "Delete training track", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}}
        },
        "/etudiants": {
            "get": {"tags": ["Students"], "summary": "List students", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Etudiant"}}}}},
            "post": {
                "tags": ["Students"], "summary": "Create student",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/EtudiantPayload"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Etudiant"}}, "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ClientError"}}}
            }
        },
        "/etudiants/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Etudiant"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}},
            "put": {
                "tags": ["Students"], "summary": "Update student",
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/EtudiantPayload"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Etudiant"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}
            },
            "delete": {"tags": ["Students"], "summary": "Delete student and their grades", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}}
        },
        "/ues": {
            "get": {"tags": ["UEs"], "summary": "List course units", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/UE"}}}}},
            "post": {
                "tags": ["UEs"], "summary": "Create course unit",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UePayload"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/UE"}}, "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ClientError"}}}
            }
        },
        "/ues/{id}": {
            "get": {"tags": ["UEs"], "summary": "Get course unit", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UE"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}},
            "put": {
                "tags": ["UEs"], "summary": "Update course unit",
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UePayload"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UE"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}
            },
            "delete": {"tags": ["UEs"], "summary": "Delete course unit and its grades", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}}
        },
        "/notes": {
            "get": {"tags": ["Notes"], "summary": "List grades", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Note"}}}}},
            "post": {
                "tags": ["Notes"], "summary": "Record grade",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/NoteCreatePayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Note"}},
                    "400": {"description": "Invalid payload or unknown reference", "schema": {"$ref": "#/definitions/ClientError"}},
                    "409": {"description": "Grade already recorded", "schema": {"$ref": "#/definitions/ClientError"}}
                }
            }
        },
        "/notes/{id}": {
            "get": {"tags": ["Notes"], "summary": "Get grade", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Note"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}},
            "put": {
                "tags": ["Notes"], "summary": "Change grade value",
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/NoteUpdatePayload"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Note"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}
            },
            "delete": {"tags": ["Notes"], "summary": "Delete grade", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/NotFound"}}}}
        },
        "/notes/ue/{ueId}": {
            "get": {"tags": ["Notes"], "summary": "List the grades of a course unit", "parameters": [{"in": "path", "name": "ueId", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Note"}}}}}
        },
        "/notes/etudiant/{etudiantId}": {
            "get": {"tags": ["Notes"], "summary": "List the grades of a student", "parameters": [{"in": "path", "name": "etudiantId", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Note"}}}}}
        },
        "/notes/etudiant/{etudiantId}/ue/{ueId}": {
            "get": {
                "tags": ["Notes"], "summary": "Get the grade of a student in a course unit",
                "description": "Answers null when no grade was recorded.",
                "parameters": [{"in": "path", "name": "etudiantId", "required": true, "type": "integer"}, {"in": "path", "name": "ueId", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Note"}}}
            }
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "required": true, "type": "integer"}
    },
    "definitions": {
        "Parcours": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nomParcours": {"type": "string"},
                "anneeFormation": {"type": "integer"}
            }
        },
        "Etudiant": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nom": {"type": "string"},
                "prenom": {"type": "string"},
                "email": {"type": "string"},
                "parcours": {"$ref": "#/definitions/Parcours"}
            }
        },
        "UE": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "intitule": {"type": "string"},
                "numeroUe": {"type": "string"},
                "parcours": {"type": "array", "items": {"$ref": "#/definitions/Parcours"}}
            }
        },
        "Note": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "valeur": {"type": "number", "minimum": 0, "maximum": 20},
                "etudiant_id": {"type": "integer"},
                "ue_id": {"type": "integer"}
            }
        },
        "ParcoursPayload": {
            "type": "object",
            "required": ["nomParcours", "anneeFormation"],
            "properties": {
                "nomParcours": {"type": "string"},
                "anneeFormation": {"type": "integer"}
            }
        },
        "EtudiantPayload": {
            "type": "object",
            "required": ["nom", "prenom", "email"],
            "properties": {
                "nom": {"type": "string"},
                "prenom": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "parcours": {"$ref": "#/definitions/Parcours"}
            }
        },
        "UePayload": {
            "type": "object",
            "required": ["intitule", "numeroUe"],
            "properties": {
                "intitule": {"type": "string"},
                "numeroUe": {"type": "string"},
                "parcours": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "NoteCreatePayload": {
            "type": "object",
            "required": ["etudiant_id", "ue_id", "valeur"],
            "properties": {
                "etudiant_id": {"type": "integer"},
                "ue_id": {"type": "integer"},
                "valeur": {"type": "number", "minimum": 0, "maximum": 20}
            }
        },
        "NoteUpdatePayload": {
            "type": "object",
            "required": ["valeur"],
            "properties": {
                "valeur": {"type": "number", "minimum": 0, "maximum": 20}
            }
        },
        "ClientError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "NotFound": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
