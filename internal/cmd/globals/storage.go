package globals

import "github.com/KatelynHaworth/gbl-helper/storage"

// Storage resolves the image locations
// passed to every command.
var Storage = storage.New()
