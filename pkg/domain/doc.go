// Package domain contains the core entities of the rental directory (users,
// places, amenities, reviews) and the validation rules attached to them.
// Entities are passive data holders related by ids; they never reach into
// storage themselves. The same rules run at creation time and again for any
// field touched by a partial update.
package domain
