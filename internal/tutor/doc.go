// Package tutor defines the boundary between the quiz application and the
// external AI/LLM service that powers it. It declares the Service interface
// for generating quizzes, checking station photographs, reviewing learner
// performance, and chatting with the anatomy mentor, together with the error
// taxonomy callers branch on. Concrete implementations live under
// internal/platform (Gemini), keeping the application core decoupled from any
// specific provider.
package tutor
