package common

// ProductName is shown to users in greeting messages.
const ProductName = "FishFarmer.AI"

// RequestIDHeader carries the per-request correlation id on HTTP responses.
const RequestIDHeader = "X-Request-Id"
