package groups

import (
	"net/http"

	"github.com/angelmondragon/littlelemon-backend/api/responses"
	"github.com/angelmondragon/littlelemon-backend/api/validators"
	"github.com/angelmondragon/littlelemon-backend/internal/memberships"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/types"
)

const userIDParam = "userID"

type addMemberRequest struct {
	Username string `json:"username" validate:"required,max=150"`
}

// ListMembers lists the users in group.
func ListMembers(svc memberships.Service, group enums.Group, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.ListMembers(r.Context(), group)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// AddMember adds the user named in the body to group.
func AddMember(svc memberships.Service, group enums.Group, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.AddMember(r.Context(), group, validators.SanitizeUsername(body.Username))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func GetMember(svc memberships.Service, group enums.Group, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, userIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.GetMember(r.Context(), group, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func RemoveMember(svc memberships.Service, group enums.Group, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, userIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveMember(r.Context(), group, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Message{Message: "user removed from " + group.String() + " group"})
	}
}
