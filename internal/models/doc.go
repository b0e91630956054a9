// Package models defines the core domain models for the secret santa service.
//
// # Models
//
//   - User: Registered account; the identity used for pairing
//   - Group: A named gift-exchange circle owned by one admin user
//   - Member: One participant of a group, optionally linked to a User
//   - JoinRequest: A user's request to become a member of a group
//   - Assignment: One giver -> receiver pair produced by a draw
//
// # Design Principles
//
// 1. **Accounts are the pairing key**: assignments reference User IDs, never Member IDs
// 2. **Guests are first-class members**: a Member without a UserID is still listed in its group
// 3. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 4. **Assignments are derived data**: they are only written by a draw and replaced wholesale
package models
