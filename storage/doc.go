// Copyright 2025 Poiesic Systems
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


// Package storage provides the persistence abstraction for candidex.
//
// It defines the CandidateStore and AuditLog interfaces that decouple
// storage implementation from the normalization and retrieval logic, plus
// the shared serialization helpers backed by generated MUS codecs.
//
// Public constructors in backend packages return these interfaces rather
// than concrete types:
//
//	store, err := badger.NewCandidateStore(path)  // returns storage.CandidateStore
//
// so alternative backends (in-memory for tests, a SQL store later) can be
// swapped in without touching consumers. Internal constructors may return
// concrete types.
//
// All implementations must be thread-safe, and all methods accept a
// context.Context for cancellation.
package storage
