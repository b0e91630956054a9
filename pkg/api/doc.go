// Package api defines the request and response messages of the secret santa
// RPC services and the JSON codec they travel in.
//
// Messages are plain structs with camelCase JSON names, so any Connect client
// speaking the JSON codec (curl included) can call the services:
//
//	curl -X POST http://localhost:8080/secretsanta.v1.SantaService/RunDraw \
//	  -H 'Content-Type: application/json' -H "Authorization: Bearer $TOKEN" \
//	  -d '{"groupId":"..."}'
package api
