package anythingllm

const (
	// API version prefix
	apiV1Prefix = "/api/v1"

	// Authentication endpoints
	endpointAuth = apiV1Prefix + "/auth" // GET - validates the API key

	// Workspace endpoints
	endpointWorkspaces          = apiV1Prefix + "/workspaces"                     // GET - list
	endpointWorkspaceNew        = apiV1Prefix + "/workspace/new"                  // POST - create
	endpointWorkspaceBySlug     = apiV1Prefix + "/workspace/%s"                   // GET, DELETE
	endpointWorkspaceEmbeddings = apiV1Prefix + "/workspace/%s/update-embeddings" // POST - re-index
	endpointWorkspaceChat       = apiV1Prefix + "/workspace/%s/chat"              // POST - chat/query

	// Admin endpoints
	endpointSystemUsers = apiV1Prefix + "/system/users" // GET - requires admin key
)
