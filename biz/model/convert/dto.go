package convert

import (
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/dto"
)

func UserDomainToInfoResp(u *domain.User) dto.GetUserInfoResp {
	return dto.GetUserInfoResp{
		ID:        u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Addresses: AddressesDomainToDTO(u.Addresses),
		CreatedAt: u.CreatedAt.Unix(),
		UpdatedAt: u.UpdatedAt.Unix(),
	}
}

func AddressesDomainToDTO(addresses []domain.Address) []dto.Address {
	res := make([]dto.Address, 0, len(addresses))
	for _, a := range addresses {
		res = append(res, dto.Address(a))
	}
	return res
}

func AddressesDTOToDomain(addresses []dto.Address) []domain.Address {
	res := make([]domain.Address, 0, len(addresses))
	for _, a := range addresses {
		res = append(res, domain.Address(a))
	}
	return res
}
