package mlpack

// Version is the library version reported by --version and stored in model
// archives.
const Version = "mlpack 4.0.1"
