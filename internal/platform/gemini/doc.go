// Package gemini provides the implementation of the tutor.Service interface
// that uses Google's Gemini API for quiz generation, station-photograph
// checks, performance reviews, and tutoring chat.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's domain logic to Google's external Gemini AI
// service. It translates between the application's domain models and the
// Gemini API without exposing the details of the external service to the
// core application.
//
// Key components:
//
// 1. Tutor:
//   - Implements the tutor.Service interface
//   - Handles communication with the Gemini API
//   - Processes structured responses into domain models
//
// 2. Payload Assembly:
//   - Renders per-operation instruction text (internal/prompt builders)
//   - Packs the learner's study material under per-category character
//     budgets (internal/prompt packer)
//   - Attaches station and chat images as inline binary parts
//
// 3. Response Processing:
//   - Checks raw responses step by step (nil response, missing
//     candidates, safety-filter stops, empty text)
//   - Strips markdown code fences the model should not emit but does
//   - Parses JSON against the declared response schemas and validates the
//     result with domain rules
//
// 4. Error Handling:
//   - Dispatches every call through the retry wrapper with a classifier
//     that reads structured API status codes before falling back to
//     message markers
//   - Propagates quota and overload failures on every operation
//   - Degrades the secondary operations (station check, performance
//     review, chat) to safe default results on all other failures
//
// The package depends on the google.golang.org/genai client library for
// communicating with the Gemini API, and handles authentication, request
// formatting, and response processing according to Google's API
// specifications.
package gemini
