// Package models defines the core domain records of the Neondara ledger.
//
// # Records
//
//   - User: an account that owns everything else
//   - Person: a contact the user exchanges gifts with
//   - Entry: one recorded gift exchange with a person
//   - Bill: a shared expense apportioned across people
//
// # Design Principles
//
//  1. Every record carries its OwnerID; stores and services never return another owner's data.
//  2. Relationships use ID strings instead of pointers.
//  3. Entries are a tagged union on GiftType. Normalize and validate them once at the boundary;
//     the calculator assumes the invariants hold.
//  4. Calendar days (entry and bill dates) are stored as UTC midnight.
package models
