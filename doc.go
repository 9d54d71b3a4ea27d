// Package identity provides client identity primitives (registration,
// password login, JWT session tokens, recovery codes) plus the HTTP surface
// that exposes them.
//
// Credential lifecycle:
//   - Accounts is the orchestrator. It composes the bcrypt hasher, the token
//     service, the authorization policy, and the recovery code service with a
//     ClientStore and a Mailer. Every operation is a single request/response
//     unit; no session state lives in the package.
//   - Clients carry a status and a surveyor flag that is persisted via Bun.
//     The surveyor flag doubles as the privilege marker: surveyor accounts may
//     read full profiles, mutate status or privilege, and delete accounts.
//
// Recovery codes:
//   - RequestRecovery emails a short hex code and hands the caller its bcrypt
//     hash. Nothing is persisted server-side; the caller round-trips the hash
//     on confirmation, so possession of code plus hash is the proof.
//
// Authorization:
//   - Policy issues Decision values for each operation given the actor's
//     session claims and resolved role. Profile self-mutation is limited to a
//     field whitelist; restricted fields travel only through the privileged
//     status endpoint.
package identity
