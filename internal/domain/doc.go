// Package domain contains the core business entities, value objects, and
// domain logic of the anatomy tutoring layer: study material and its source
// categories, quiz questions and generation requests, station-photograph
// checks, performance summaries with mentor feedback, and tutoring chat
// turns. It represents the heart of the system, independent of any specific
// infrastructure or delivery mechanism; every type validates itself and the
// safe default values for degraded operation live next to the types they
// stand in for.
package domain
