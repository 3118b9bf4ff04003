package client

const (
	// Authentication endpoints
	endpointLogin = "/auth/login"

	// Agent endpoints
	endpointAgents     = "/agents/"     // GET list, POST register
	endpointAgentByID  = "/agents/%s"   // GET
	endpointProperties = "/properties/" // GET list, POST create

	// Property image endpoints
	endpointPropertyImageUpload = "/properties/%s/upload-image" // POST multipart
	endpointPropertyImageURL    = "/properties/%s/image-url"    // GET

	// Chat endpoints
	endpointChat = "/gpt/chat/" // POST

	// Dashboard endpoints
	endpointInsights = "/api/dashboard/insights" // GET
)
