package catalog

import (
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func init() {
	mustRegisterCommand(wire.OpReadVersionInfo, func() Command { return &ReadVersionInfo{} })
	mustRegisterCommand(wire.OpReadSupportedCommands, func() Command { return &ReadSupportedCommands{} })
	mustRegisterCommand(wire.OpReadControllerIndexList, func() Command { return &ReadControllerIndexList{} })
	mustRegisterCommand(wire.OpReadControllerInfo, func() Command { return &ReadControllerInfo{} })
	mustRegisterCommand(wire.OpSetPowered, func() Command { return &SetPowered{} })
	mustRegisterCommand(wire.OpSetDiscoverable, func() Command { return &SetDiscoverable{} })
	mustRegisterCommand(wire.OpSetConnectable, func() Command { return &SetConnectable{} })
	mustRegisterCommand(wire.OpSetFastConnectable, func() Command { return &SetFastConnectable{} })
	mustRegisterCommand(wire.OpSetBondable, func() Command { return &SetBondable{} })
	mustRegisterCommand(wire.OpSetLinkSecurity, func() Command { return &SetLinkSecurity{} })
	mustRegisterCommand(wire.OpSetSSP, func() Command { return &SetSSP{} })
	mustRegisterCommand(wire.OpSetHighSpeed, func() Command { return &SetHighSpeed{} })
	mustRegisterCommand(wire.OpSetLE, func() Command { return &SetLE{} })
	mustRegisterCommand(wire.OpSetDeviceClass, func() Command { return &SetDeviceClass{} })
	mustRegisterCommand(wire.OpSetLocalName, func() Command { return &SetLocalName{} })
	mustRegisterCommand(wire.OpAddUUID, func() Command { return &AddUUID{} })
	mustRegisterCommand(wire.OpRemoveUUID, func() Command { return &RemoveUUID{} })
	mustRegisterCommand(wire.OpLoadLinkKeys, func() Command { return &LoadLinkKeys{} })
	mustRegisterCommand(wire.OpLoadLongTermKeys, func() Command { return &LoadLongTermKeys{} })
	mustRegisterCommand(wire.OpDisconnect, func() Command { return &Disconnect{} })
	mustRegisterCommand(wire.OpGetConnections, func() Command { return &GetConnections{} })
	mustRegisterCommand(wire.OpPinCodeReply, func() Command { return &PinCodeReply{} })
	mustRegisterCommand(wire.OpPinCodeNegativeReply, func() Command { return &PinCodeNegativeReply{} })
	mustRegisterCommand(wire.OpSetIOCapability, func() Command { return &SetIOCapability{} })
	mustRegisterCommand(wire.OpPairDevice, func() Command { return &PairDevice{} })
	mustRegisterCommand(wire.OpCancelPairDevice, func() Command { return &CancelPairDevice{} })
	mustRegisterCommand(wire.OpUnpairDevice, func() Command { return &UnpairDevice{} })
	mustRegisterCommand(wire.OpUserConfirmationReply, func() Command { return &UserConfirmationReply{} })
	mustRegisterCommand(wire.OpUserConfirmationNegativeReply, func() Command { return &UserConfirmationNegativeReply{} })
	mustRegisterCommand(wire.OpUserPasskeyReply, func() Command { return &UserPasskeyReply{} })
	mustRegisterCommand(wire.OpUserPasskeyNegativeReply, func() Command { return &UserPasskeyNegativeReply{} })
	mustRegisterCommand(wire.OpReadLocalOOBData, func() Command { return &ReadLocalOOBData{} })
	mustRegisterCommand(wire.OpAddRemoteOOBData, func() Command { return &AddRemoteOOBData{} })
	mustRegisterCommand(wire.OpRemoveRemoteOOBData, func() Command { return &RemoveRemoteOOBData{} })
	mustRegisterCommand(wire.OpStartDiscovery, func() Command { return &StartDiscovery{} })
	mustRegisterCommand(wire.OpStopDiscovery, func() Command { return &StopDiscovery{} })
	mustRegisterCommand(wire.OpConfirmName, func() Command { return &ConfirmName{} })
	mustRegisterCommand(wire.OpBlockDevice, func() Command { return &BlockDevice{} })
	mustRegisterCommand(wire.OpUnblockDevice, func() Command { return &UnblockDevice{} })
	mustRegisterCommand(wire.OpSetDeviceID, func() Command { return &SetDeviceID{} })
	mustRegisterCommand(wire.OpSetAdvertising, func() Command { return &SetAdvertising{} })
	mustRegisterCommand(wire.OpSetBREDR, func() Command { return &SetBREDR{} })
	mustRegisterCommand(wire.OpSetStaticAddress, func() Command { return &SetStaticAddress{} })
	mustRegisterCommand(wire.OpSetScanParameters, func() Command { return &SetScanParameters{} })
	mustRegisterCommand(wire.OpSetSecureConnections, func() Command { return &SetSecureConnections{} })
	mustRegisterCommand(wire.OpSetDebugKeys, func() Command { return &SetDebugKeys{} })
	mustRegisterCommand(wire.OpSetPrivacy, func() Command { return &SetPrivacy{} })
	mustRegisterCommand(wire.OpLoadIdentityResolvingKeys, func() Command { return &LoadIdentityResolvingKeys{} })
	mustRegisterCommand(wire.OpGetConnectionInfo, func() Command { return &GetConnectionInfo{} })
	mustRegisterCommand(wire.OpGetClockInfo, func() Command { return &GetClockInfo{} })
	mustRegisterCommand(wire.OpAddDevice, func() Command { return &AddDevice{} })
	mustRegisterCommand(wire.OpRemoveDevice, func() Command { return &RemoveDevice{} })
	mustRegisterCommand(wire.OpLoadConnectionParameters, func() Command { return &LoadConnectionParameters{} })
	mustRegisterCommand(wire.OpReadUnconfiguredIndexList, func() Command { return &ReadUnconfiguredIndexList{} })
	mustRegisterCommand(wire.OpReadControllerConfigInfo, func() Command { return &ReadControllerConfigInfo{} })
	mustRegisterCommand(wire.OpSetExternalConfig, func() Command { return &SetExternalConfig{} })
	mustRegisterCommand(wire.OpSetPublicAddress, func() Command { return &SetPublicAddress{} })
	mustRegisterCommand(wire.OpStartServiceDiscovery, func() Command { return &StartServiceDiscovery{} })
	mustRegisterCommand(wire.OpReadLocalOOBExtendedData, func() Command { return &ReadLocalOOBExtendedData{} })
	mustRegisterCommand(wire.OpReadExtendedIndexList, func() Command { return &ReadExtendedIndexList{} })
	mustRegisterCommand(wire.OpReadAdvertisingFeatures, func() Command { return &ReadAdvertisingFeatures{} })
	mustRegisterCommand(wire.OpAddAdvertising, func() Command { return &AddAdvertising{} })
	mustRegisterCommand(wire.OpRemoveAdvertising, func() Command { return &RemoveAdvertising{} })
	mustRegisterCommand(wire.OpGetAdvertisingSizeInfo, func() Command { return &GetAdvertisingSizeInfo{} })
	mustRegisterCommand(wire.OpStartLimitedDiscovery, func() Command { return &StartLimitedDiscovery{} })
	mustRegisterCommand(wire.OpReadExtendedControllerInfo, func() Command { return &ReadExtendedControllerInfo{} })
	mustRegisterCommand(wire.OpSetAppearance, func() Command { return &SetAppearance{} })
	mustRegisterCommand(wire.OpGetPhyConfiguration, func() Command { return &GetPhyConfiguration{} })
	mustRegisterCommand(wire.OpSetPhyConfiguration, func() Command { return &SetPhyConfiguration{} })
	mustRegisterCommand(wire.OpLoadBlockedKeys, func() Command { return &LoadBlockedKeys{} })
	mustRegisterCommand(wire.OpSetWidebandSpeech, func() Command { return &SetWidebandSpeech{} })

	mustRegisterEvent(wire.EvCommandComplete, func() Event { return &CommandComplete{} })
	mustRegisterEvent(wire.EvCommandStatus, func() Event { return &CommandStatus{} })
	mustRegisterEvent(wire.EvControllerError, func() Event { return &ControllerError{} })
	mustRegisterEvent(wire.EvIndexAdded, func() Event { return &IndexAdded{} })
	mustRegisterEvent(wire.EvIndexRemoved, func() Event { return &IndexRemoved{} })
	mustRegisterEvent(wire.EvNewSettings, func() Event { return &NewSettings{} })
	mustRegisterEvent(wire.EvClassOfDeviceChanged, func() Event { return &ClassOfDeviceChanged{} })
	mustRegisterEvent(wire.EvLocalNameChanged, func() Event { return &LocalNameChanged{} })
	mustRegisterEvent(wire.EvNewLinkKey, func() Event { return &NewLinkKey{} })
	mustRegisterEvent(wire.EvNewLongTermKey, func() Event { return &NewLongTermKey{} })
	mustRegisterEvent(wire.EvDeviceConnected, func() Event { return &DeviceConnected{} })
	mustRegisterEvent(wire.EvDeviceDisconnected, func() Event { return &DeviceDisconnected{} })
	mustRegisterEvent(wire.EvConnectFailed, func() Event { return &ConnectFailed{} })
	mustRegisterEvent(wire.EvPinCodeRequest, func() Event { return &PinCodeRequest{} })
	mustRegisterEvent(wire.EvUserConfirmationRequest, func() Event { return &UserConfirmationRequest{} })
	mustRegisterEvent(wire.EvUserPasskeyRequest, func() Event { return &UserPasskeyRequest{} })
	mustRegisterEvent(wire.EvAuthenticationFailed, func() Event { return &AuthenticationFailed{} })
	mustRegisterEvent(wire.EvDeviceFound, func() Event { return &DeviceFound{} })
	mustRegisterEvent(wire.EvDiscovering, func() Event { return &Discovering{} })
	mustRegisterEvent(wire.EvDeviceBlocked, func() Event { return &DeviceBlocked{} })
	mustRegisterEvent(wire.EvDeviceUnblocked, func() Event { return &DeviceUnblocked{} })
	mustRegisterEvent(wire.EvDeviceUnpaired, func() Event { return &DeviceUnpaired{} })
	mustRegisterEvent(wire.EvPasskeyNotify, func() Event { return &PasskeyNotify{} })
	mustRegisterEvent(wire.EvNewIdentityResolvingKey, func() Event { return &NewIdentityResolvingKey{} })
	mustRegisterEvent(wire.EvNewSignatureResolvingKey, func() Event { return &NewSignatureResolvingKey{} })
	mustRegisterEvent(wire.EvDeviceAdded, func() Event { return &DeviceAdded{} })
	mustRegisterEvent(wire.EvDeviceRemoved, func() Event { return &DeviceRemoved{} })
	mustRegisterEvent(wire.EvNewConnectionParameter, func() Event { return &NewConnectionParameter{} })
	mustRegisterEvent(wire.EvUnconfiguredIndexAdded, func() Event { return &UnconfiguredIndexAdded{} })
	mustRegisterEvent(wire.EvUnconfiguredIndexRemoved, func() Event { return &UnconfiguredIndexRemoved{} })
	mustRegisterEvent(wire.EvNewConfigOptions, func() Event { return &NewConfigOptions{} })
	mustRegisterEvent(wire.EvExtendedIndexAdded, func() Event { return &ExtendedIndexAdded{} })
	mustRegisterEvent(wire.EvExtendedIndexRemoved, func() Event { return &ExtendedIndexRemoved{} })
	mustRegisterEvent(wire.EvLocalOOBExtendedDataUpdated, func() Event { return &LocalOOBExtendedDataUpdated{} })
	mustRegisterEvent(wire.EvAdvertisingAdded, func() Event { return &AdvertisingAdded{} })
	mustRegisterEvent(wire.EvAdvertisingRemoved, func() Event { return &AdvertisingRemoved{} })
	mustRegisterEvent(wire.EvExtendedControllerInfoChanged, func() Event { return &ExtendedControllerInfoChanged{} })
	mustRegisterEvent(wire.EvPhyConfigurationChanged, func() Event { return &PhyConfigurationChanged{} })
	mustRegisterEvent(wire.EvExperimentalFeatureChanged, func() Event { return &ExperimentalFeatureChanged{} })
	mustRegisterEvent(wire.EvDefaultSystemConfigChanged, func() Event { return &DefaultSystemConfigChanged{} })
	mustRegisterEvent(wire.EvDefaultRuntimeConfigChanged, func() Event { return &DefaultRuntimeConfigChanged{} })
}
