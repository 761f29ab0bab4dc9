package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Peer Tutoring API",
        "description": "Tutoring marketplace backend: opportunities, jobs, verification and volunteer hours",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Tutee", "description": "Tutoring requests and scheduling for tutees"},
        {"name": "Tutor", "description": "Opportunity browsing and job lifecycle for tutors"},
        {"name": "Admin", "description": "Verification, approvals and reporting"}
    ],
    "paths": {
        "/tutee/dashboard": {
            "get": {
                "tags": ["Tutee"],
                "summary": "Tutee dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutee/opportunities": {
            "post": {
                "tags": ["Tutee"],
                "summary": "Create tutoring opportunity",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOpportunityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Tutee"],
                "summary": "List own open opportunities",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutee/opportunities/{id}": {
            "delete": {
                "tags": ["Tutee"],
                "summary": "Cancel an open opportunity",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "400": {"description": "No longer open", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutee/jobs": {
            "get": {
                "tags": ["Tutee"],
                "summary": "List own jobs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutee/jobs/{id}/availability": {
            "put": {
                "tags": ["Tutee"],
                "summary": "Submit availability windows for a job",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutee/jobs/{id}": {
            "get": {
                "tags": ["Tutee"],
                "summary": "Fetch one of the tutee's jobs",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tutee"],
                "summary": "Cancel a job and recreate its opportunity",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Opportunity recreated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/dashboard": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Tutor dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/profile": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Own tutor profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/opportunities": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Browse open opportunities",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/opportunities/{id}/accept": {
            "post": {
                "tags": ["Tutor"],
                "summary": "Accept an opportunity, creating a job",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Job created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not approved for subject", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already claimed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/jobs": {
            "get": {
                "tags": ["Tutor"],
                "summary": "List own jobs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/jobs/{id}/schedule": {
            "put": {
                "tags": ["Tutor"],
                "summary": "Schedule a session inside the tutee's availability",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Time outside availability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/jobs/{id}/recording": {
            "put": {
                "tags": ["Tutor"],
                "summary": "Attach a session recording URL",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/jobs/{id}/complete": {
            "post": {
                "tags": ["Tutor"],
                "summary": "Complete a session and queue it for verification",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Queued for verification", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Recording required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/jobs/{id}": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Fetch one of the tutor's jobs",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tutor"],
                "summary": "Cancel a job and recreate its opportunity",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Opportunity recreated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/verifications": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Own sessions awaiting verification",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/history": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Own verified session history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/approvals": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Own subject approvals",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/certifications": {
            "post": {
                "tags": ["Tutor"],
                "summary": "Request certification for a subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CertificationRequestInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/verifications": {
            "get": {
                "tags": ["Admin"],
                "summary": "Sessions awaiting verification",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/verifications/{id}/verify": {
            "post": {
                "tags": ["Admin"],
                "summary": "Verify a session and credit volunteer hours",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Verified", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/history": {
            "get": {
                "tags": ["Admin"],
                "summary": "Verified session history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/opportunities": {
            "get": {
                "tags": ["Admin"],
                "summary": "All opportunities",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/jobs": {
            "get": {
                "tags": ["Admin"],
                "summary": "All jobs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/jobs/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Cancel any job",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Opportunity recreated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/tutors": {
            "get": {
                "tags": ["Admin"],
                "summary": "List tutors",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/tutors/{id}/status": {
            "put": {
                "tags": ["Admin"],
                "summary": "Activate or deactivate a tutor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TutorStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/tutors/{id}/approvals": {
            "post": {
                "tags": ["Admin"],
                "summary": "Grant a subject approval directly",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GrantApprovalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/certifications": {
            "get": {
                "tags": ["Admin"],
                "summary": "Pending certification requests",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/certifications/{id}/resolve": {
            "post": {
                "tags": ["Admin"],
                "summary": "Approve or reject a certification request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CertificationDecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Resolved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reports/volunteer-hours": {
            "get": {
                "tags": ["Admin"],
                "summary": "Volunteer hours report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/admin/reports/verified-sessions": {
            "get": {
                "tags": ["Admin"],
                "summary": "Verified sessions report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        }
    },
    "definitions": {
        "CreateOpportunityRequest": {
            "type": "object",
            "required": ["subject_name", "subject_type", "subject_grade"],
            "properties": {
                "subject_name": {"type": "string"},
                "subject_type": {"type": "string"},
                "subject_grade": {"type": "string"},
                "language": {"type": "string"},
                "location_preference": {"type": "string"},
                "additional_notes": {"type": "string"},
                "priority": {"type": "string", "enum": ["normal", "high"]}
            }
        },
        "AvailabilityRequest": {
            "type": "object",
            "required": ["availability"],
            "properties": {
                "availability": {
                    "type": "object",
                    "description": "Date (YYYY-MM-DD) to HH:MM-HH:MM windows",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                },
                "desired_duration_minutes": {"type": "integer"}
            }
        },
        "ScheduleRequest": {
            "type": "object",
            "required": ["scheduled_time", "duration_minutes"],
            "properties": {
                "scheduled_time": {"type": "string", "format": "date-time"},
                "duration_minutes": {"type": "integer", "enum": [60, 90, 120, 150, 180]}
            }
        },
        "RecordingRequest": {
            "type": "object",
            "required": ["recording_url"],
            "properties": {
                "recording_url": {"type": "string"}
            }
        },
        "VerifyRequest": {
            "type": "object",
            "properties": {
                "awarded_hours": {"type": "number"}
            }
        },
        "TutorStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["active", "pending", "suspended"]}
            }
        },
        "CertificationRequestInput": {
            "type": "object",
            "required": ["subject_name", "subject_type", "subject_grade"],
            "properties": {
                "subject_name": {"type": "string"},
                "subject_type": {"type": "string"},
                "subject_grade": {"type": "string"},
                "tutor_mark": {"type": "string"}
            }
        },
        "CertificationDecisionRequest": {
            "type": "object",
            "required": ["approve"],
            "properties": {
                "approve": {"type": "boolean"}
            }
        },
        "GrantApprovalRequest": {
            "type": "object",
            "required": ["subject_name", "subject_type", "subject_grade"],
            "properties": {
                "subject_name": {"type": "string"},
                "subject_type": {"type": "string"},
                "subject_grade": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
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
