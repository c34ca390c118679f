// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package azureopenai implements chat, streaming chat, and embedding models
// on the Azure OpenAI service and, with WithNonAzureAPIKey, on the OpenAI
// service directly.
//
// Two authentication modes are supported:
//
//  1. Azure OpenAI: set WithEndpoint to the resource endpoint
//     (https://{resource}.openai.azure.com), WithDeployment to the model
//     deployment name, and WithAPIKey to the Azure OpenAI key. Requests go
//     to /openai/deployments/{deployment}/... with the api-key header and
//     an api-version query parameter.
//
//  2. OpenAI: set WithNonAzureAPIKey to an OpenAI API key. The endpoint
//     defaults to https://api.openai.com/v1 and the key is sent as a
//     bearer token; WithDeployment selects the model name.
//
// Streaming responses arrive as server-sent events. Each event carries a
// partial delta that is forwarded to the caller's StreamHandler and
// accumulated by a streaming response builder into the final response with
// token usage and finish reason.
package azureopenai
