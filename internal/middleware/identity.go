package middleware

// identity.go holds the user-identity helper shared by the rate limiter and
// cache key builders.  JWTAuth stores the raw "sub" claim under "user_id",
// so the value may arrive as float64, string or uint64 depending on how the
// token was decoded.  Anonymous requests resolve to "anon".

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user's id as a string for use in
// Redis keys.  It returns "anon" when no user is authenticated.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    case int64:
        return strconv.FormatInt(v, 10)
    }
    return "anon"
}
